// internal/ledger/spin_test.go
package ledger

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"earnify/internal/domain"
	"earnify/internal/util"
)

func TestSpinQuota(t *testing.T) {
	settings := domain.DefaultAdminSettings()
	rng := rand.New(rand.NewSource(1))

	u := testUser()
	require.Zero(t, u.DailySpinsUsed)
	require.Zero(t, u.ExtraSpinsAvailable)

	// Exactly two free spins succeed.
	for i := 0; i < domain.MaxFreeSpinsPerDay; i++ {
		var err error
		u, _, err = Spin(u, rng, settings, testNow)
		require.NoError(t, err)
	}
	assert.Equal(t, domain.MaxFreeSpinsPerDay, u.DailySpinsUsed)

	// The third fails.
	_, _, err := Spin(u, rng, settings, testNow)
	assert.ErrorIs(t, err, util.ErrNoSpinsLeft)
	assert.False(t, CanSpin(u, testNow))

	// Unlocking one bonus spin makes a third spin possible.
	u, err = UnlockBonusSpin(u)
	require.NoError(t, err)
	assert.True(t, CanSpin(u, testNow))

	u, _, err = Spin(u, rng, settings, testNow)
	assert.NoError(t, err)
	assert.Zero(t, u.ExtraSpinsAvailable)
	assert.Equal(t, domain.MaxFreeSpinsPerDay, u.DailySpinsUsed)

	_, _, err = Spin(u, rng, settings, testNow)
	assert.ErrorIs(t, err, util.ErrNoSpinsLeft)
}

func TestSpinDailyReset(t *testing.T) {
	settings := domain.DefaultAdminSettings()
	rng := rand.New(rand.NewSource(7))

	u := testUser()
	u.DailySpinsUsed = domain.MaxFreeSpinsPerDay
	u.LastSpinDay = testNow.Format(domain.DateLayout)

	// Exhausted today, but the quota rolls over at the day boundary.
	assert.False(t, CanSpin(u, testNow))

	tomorrow := testNow.Add(24 * time.Hour)
	assert.True(t, CanSpin(u, tomorrow))

	next, _, err := Spin(u, rng, settings, tomorrow)
	require.NoError(t, err)
	assert.Equal(t, 1, next.DailySpinsUsed)
	assert.Equal(t, tomorrow.Format(domain.DateLayout), next.LastSpinDay)
}

func TestSpinConsumesFreeSlotsBeforeBonus(t *testing.T) {
	settings := domain.DefaultAdminSettings()
	rng := rand.New(rand.NewSource(3))

	u := testUser()
	u.ExtraSpinsAvailable = 2

	u, _, err := Spin(u, rng, settings, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, u.DailySpinsUsed)
	assert.Equal(t, 2, u.ExtraSpinsAvailable)
}

func TestSpinRewardFromTable(t *testing.T) {
	settings := domain.DefaultAdminSettings()
	rng := rand.New(rand.NewSource(42))

	table := make(map[int64]int)
	for _, v := range settings.SpinRewards {
		table[v] = 0
	}

	const trials = 4000
	for i := 0; i < trials; i++ {
		u := testUser()
		next, reward, err := Spin(u, rng, settings, testNow)
		require.NoError(t, err)

		_, inTable := table[reward]
		require.True(t, inTable, "reward %d not in the fixed table", reward)
		table[reward]++

		// A zero draw is a valid "no win" outcome, never an error.
		assert.Equal(t, u.Coins+reward, next.Coins)
		assert.GreaterOrEqual(t, next.Coins, int64(0))
	}

	// Each table entry should come up with roughly uniform frequency. The
	// table has 8 slots with two duplicated values, so the duplicated
	// entries should land near 2x the unique ones.
	perSlot := float64(trials) / float64(len(settings.SpinRewards))
	for _, value := range []int64{15, 20, 50, 0} { // unique entries
		assert.InDelta(t, perSlot, float64(table[value]), perSlot*0.5, "value %d", value)
	}
	for _, value := range []int64{5, 10} { // doubled entries
		assert.InDelta(t, 2*perSlot, float64(table[value]), perSlot, "value %d", value)
	}
}

func TestUnlockBonusSpinCap(t *testing.T) {
	u := testUser()

	var err error
	for i := 0; i < domain.MaxBonusSpins; i++ {
		u, err = UnlockBonusSpin(u)
		require.NoError(t, err)
	}
	assert.Equal(t, domain.MaxBonusSpins, u.ExtraSpinsAvailable)

	next, err := UnlockBonusSpin(u)
	assert.ErrorIs(t, err, util.ErrMaxBonusSpinsReached)
	assert.Equal(t, domain.MaxBonusSpins, next.ExtraSpinsAvailable)

	// A capacity grant, not a credit.
	assert.Equal(t, testUser().Coins, u.Coins)
}
