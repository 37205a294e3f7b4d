// internal/ledger/ledger.go
package ledger

import (
	"time"

	"earnify/internal/domain"
	"earnify/internal/util"
)

// Task identifies a gated flat-reward earning action.
type Task string

const (
	TaskWatchAd      Task = "watch"
	TaskClickTask    Task = "click"
	TaskVisitWebsite Task = "visit"
)

// Reward returns the configured flat credit for the task.
func (t Task) Reward(s domain.AdminSettings) (int64, error) {
	switch t {
	case TaskWatchAd:
		return s.WatchAdReward, nil
	case TaskClickTask:
		return s.ClickEarnReward, nil
	case TaskVisitWebsite:
		return s.WebsiteVisitReward, nil
	}
	return 0, util.ErrInvalidInput
}

// DwellSeconds returns the gate duration the task must satisfy before credit.
func (t Task) DwellSeconds(s domain.AdminSettings) int {
	if t == TaskVisitWebsite {
		return s.WebsiteVisitTime
	}
	return s.AdDuration
}

// DailyCheckIn credits the daily check-in reward once per calendar day.
// Days are compared as exact local-date strings.
func DailyCheckIn(u domain.User, s domain.AdminSettings, now time.Time) (domain.User, error) {
	today := now.Format(domain.DateLayout)
	if u.LastDailyCheckIn == today {
		return u, util.ErrAlreadyCheckedIn
	}
	u.Coins += s.DailyCheckInReward
	u.LastDailyCheckIn = today
	return u, nil
}

// CreditTask applies the flat reward for a completed task gate. The ledger
// only does the accounting; whether the gate actually completed is the
// caller's responsibility.
func CreditTask(u domain.User, task Task, s domain.AdminSettings) (domain.User, error) {
	reward, err := task.Reward(s)
	if err != nil {
		return u, err
	}
	u.Coins += reward
	return u, nil
}
