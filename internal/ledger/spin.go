// internal/ledger/spin.go
package ledger

import (
	"math/rand"
	"time"

	"earnify/internal/domain"
	"earnify/internal/util"
)

// rollSpinDay resets the free-spin counter when the stored quota day differs
// from today. Every spin-related transition goes through this first.
func rollSpinDay(u domain.User, now time.Time) domain.User {
	today := now.Format(domain.DateLayout)
	if u.LastSpinDay != today {
		u.DailySpinsUsed = 0
		u.LastSpinDay = today
	}
	return u
}

// CanSpin reports whether the user has a free daily slot or a bonus spin left.
func CanSpin(u domain.User, now time.Time) bool {
	u = rollSpinDay(u, now)
	return u.DailySpinsUsed < domain.MaxFreeSpinsPerDay || u.ExtraSpinsAvailable > 0
}

// Spin draws a reward uniformly from the configured table and consumes a
// spin slot: free daily slots first, then bonus slots. A zero draw is a
// valid "no win" outcome.
func Spin(u domain.User, rng *rand.Rand, s domain.AdminSettings, now time.Time) (domain.User, int64, error) {
	u = rollSpinDay(u, now)
	if u.DailySpinsUsed >= domain.MaxFreeSpinsPerDay && u.ExtraSpinsAvailable <= 0 {
		return u, 0, util.ErrNoSpinsLeft
	}

	reward := s.SpinRewards[rng.Intn(len(s.SpinRewards))]
	u.Coins += reward
	if u.DailySpinsUsed < domain.MaxFreeSpinsPerDay {
		u.DailySpinsUsed++
	} else {
		u.ExtraSpinsAvailable--
	}
	return u, reward, nil
}

// UnlockBonusSpin grants one bonus-spin slot, capped at MaxBonusSpins. It is
// a capacity grant, not a credit: coins are untouched. The caller gates this
// behind an ad dwell before applying it.
func UnlockBonusSpin(u domain.User) (domain.User, error) {
	if u.ExtraSpinsAvailable >= domain.MaxBonusSpins {
		return u, util.ErrMaxBonusSpinsReached
	}
	u.ExtraSpinsAvailable++
	return u, nil
}
