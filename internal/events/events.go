// internal/events/events.go
package events

import "time"

// Event is a cross-user fact emitted by the core for external consumers.
type Event interface {
	Type() string
}

// ReferralApplied is published when a user successfully applies a referral
// code. The external reconciliation process consumes it to credit the
// referrer's invite counters and earnings; the core never mutates a second
// user record directly.
type ReferralApplied struct {
	ReferrerCode string    `json:"referrer_code"`
	UserID       string    `json:"user_id"`
	Reward       int64     `json:"reward"`
	AppliedAt    time.Time `json:"applied_at"`
}

// Type implements Event.
func (ReferralApplied) Type() string { return "referral.applied" }
