// internal/domain/user.go
package domain

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-day format used for check-in and spin-reset
// gating. Days are compared as exact strings in the acting process's local
// time; no timezone normalization is performed.
const DateLayout = "2006-01-02"

// User is the economic subject: a coin balance plus the rate-limit and
// referral state around it.
type User struct {
	UID         string `db:"uid" json:"uid"`                   // Primary key, UUID
	Name        string `db:"name" json:"name"`                 // Display name
	Username    string `db:"username" json:"username"`         // Unique username
	PhoneNumber string `db:"phone_number" json:"phone_number"` // Unique across all users

	Coins int64 `db:"coins" json:"coins"` // Sole spendable balance, never negative

	InviteCode     string  `db:"invite_code" json:"invite_code"`       // Unique, generated at creation, immutable
	ReferredBy     *string `db:"referred_by" json:"referred_by"`       // Set at most once, never equals InviteCode
	TotalInvites   int64   `db:"total_invites" json:"total_invites"`   // Maintained by the external reconciliation process
	ActiveInvites  int64   `db:"active_invites" json:"active_invites"` // Maintained by the external reconciliation process
	InviteEarnings int64   `db:"invite_earnings" json:"invite_earnings"`

	LastDailyCheckIn    string `db:"last_daily_check_in" json:"last_daily_check_in"` // YYYY-MM-DD, empty = never
	DailySpinsUsed      int    `db:"daily_spins_used" json:"daily_spins_used"`       // 0..2 free spins per day
	LastSpinDay         string `db:"last_spin_day" json:"last_spin_day"`             // YYYY-MM-DD of the last spin-quota day
	ExtraSpinsAvailable int    `db:"extra_spins_available" json:"extra_spins_available"` // 0..5 bonus spins

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewUser creates a new User instance with a fresh UID and invite code.
// The invite code is the uppercased username plus three random digits,
// drawn from the provided source.
func NewUser(name, username, phoneNumber string, rng *rand.Rand) *User {
	return &User{
		UID:         uuid.NewString(),
		Name:        name,
		Username:    username,
		PhoneNumber: phoneNumber,
		InviteCode:  generateInviteCode(username, rng),
		CreatedAt:   time.Now().UTC(),
	}
}

func generateInviteCode(username string, rng *rand.Rand) string {
	return strings.ToUpper(fmt.Sprintf("%s%03d", username, rng.Intn(1000)))
}
