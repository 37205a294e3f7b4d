// internal/ledger/referral.go
package ledger

import (
	"earnify/internal/domain"
	"earnify/internal/util"
)

// ApplyReferral records the referral code on the applying user and credits
// the referral reward, at most once per account. Crediting the referrer's
// invite counters is the external reconciliation process's job; the caller
// emits a ReferralApplied event for it.
func ApplyReferral(u domain.User, code string, s domain.AdminSettings) (domain.User, error) {
	if code == "" {
		return u, util.ErrInvalidInput
	}
	if u.ReferredBy != nil {
		return u, util.ErrReferralAlreadyApplied
	}
	if code == u.InviteCode {
		return u, util.ErrSelfReferral
	}
	u.ReferredBy = &code
	u.Coins += s.ReferralReward
	return u, nil
}
