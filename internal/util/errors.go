// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input provided")
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEntry = errors.New("duplicate entry") // For cases like creating a user with an existing phone number

	// Earning / spin state errors.
	ErrAlreadyCheckedIn     = errors.New("already checked in today")
	ErrNoSpinsLeft          = errors.New("no spins left")
	ErrMaxBonusSpinsReached = errors.New("maximum bonus spins reached")
	ErrGateActive           = errors.New("another task gate is already active")
	ErrGateCanceled         = errors.New("task gate was canceled before completion")

	// Referral errors.
	ErrReferralAlreadyApplied = errors.New("referral code already applied")
	ErrSelfReferral           = errors.New("cannot apply own referral code")

	// Withdrawal errors.
	ErrBelowMinimum         = errors.New("amount below withdrawal minimum")
	ErrMissingAccountNumber = errors.New("account number is required")
)

// IsError reports whether err matches the target sentinel anywhere in its chain.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
