// internal/ledger/ledger_test.go
package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"earnify/internal/domain"
	"earnify/internal/util"
)

var testNow = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

func testUser() domain.User {
	return domain.User{
		UID:        "uid-1",
		Username:   "rakib",
		InviteCode: "RAKIB042",
		Coins:      100,
	}
}

func TestDailyCheckIn(t *testing.T) {
	settings := domain.DefaultAdminSettings()

	t.Run("FirstCheckInOfTheDay", func(t *testing.T) {
		u := testUser()

		next, err := DailyCheckIn(u, settings, testNow)

		assert.NoError(t, err)
		assert.Equal(t, u.Coins+settings.DailyCheckInReward, next.Coins)
		assert.Equal(t, "2025-03-14", next.LastDailyCheckIn)
	})

	t.Run("SecondCheckInSameDayFails", func(t *testing.T) {
		u := testUser()

		first, err := DailyCheckIn(u, settings, testNow)
		assert.NoError(t, err)

		second, err := DailyCheckIn(first, settings, testNow)

		assert.ErrorIs(t, err, util.ErrAlreadyCheckedIn)
		// Coins changed exactly once.
		assert.Equal(t, u.Coins+settings.DailyCheckInReward, second.Coins)
	})

	t.Run("NextDaySucceedsAgain", func(t *testing.T) {
		u := testUser()

		first, err := DailyCheckIn(u, settings, testNow)
		assert.NoError(t, err)

		tomorrow := testNow.Add(24 * time.Hour)
		second, err := DailyCheckIn(first, settings, tomorrow)

		assert.NoError(t, err)
		assert.Equal(t, u.Coins+2*settings.DailyCheckInReward, second.Coins)
		assert.Equal(t, "2025-03-15", second.LastDailyCheckIn)
	})
}

func TestCreditTask(t *testing.T) {
	settings := domain.DefaultAdminSettings()

	cases := []struct {
		task   Task
		reward int64
	}{
		{TaskWatchAd, settings.WatchAdReward},
		{TaskClickTask, settings.ClickEarnReward},
		{TaskVisitWebsite, settings.WebsiteVisitReward},
	}

	for _, tc := range cases {
		t.Run(string(tc.task), func(t *testing.T) {
			u := testUser()

			next, err := CreditTask(u, tc.task, settings)

			assert.NoError(t, err)
			assert.Equal(t, u.Coins+tc.reward, next.Coins)
			assert.GreaterOrEqual(t, next.Coins, int64(0))
		})
	}

	t.Run("UnknownTask", func(t *testing.T) {
		u := testUser()

		next, err := CreditTask(u, Task("bogus"), settings)

		assert.ErrorIs(t, err, util.ErrInvalidInput)
		assert.Equal(t, u.Coins, next.Coins)
	})
}

func TestTaskDwellSeconds(t *testing.T) {
	settings := domain.DefaultAdminSettings()

	assert.Equal(t, settings.AdDuration, TaskWatchAd.DwellSeconds(settings))
	assert.Equal(t, settings.AdDuration, TaskClickTask.DwellSeconds(settings))
	assert.Equal(t, settings.WebsiteVisitTime, TaskVisitWebsite.DwellSeconds(settings))
}
