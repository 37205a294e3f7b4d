// internal/ledger/referral_test.go
package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"earnify/internal/domain"
	"earnify/internal/util"
)

func TestApplyReferral(t *testing.T) {
	settings := domain.DefaultAdminSettings()

	t.Run("Success", func(t *testing.T) {
		u := testUser()

		next, err := ApplyReferral(u, "FRIEND123", settings)

		assert.NoError(t, err)
		require.NotNil(t, next.ReferredBy)
		assert.Equal(t, "FRIEND123", *next.ReferredBy)
		assert.Equal(t, u.Coins+settings.ReferralReward, next.Coins)
	})

	t.Run("SelfReferralAlwaysFails", func(t *testing.T) {
		u := testUser()

		next, err := ApplyReferral(u, u.InviteCode, settings)

		assert.ErrorIs(t, err, util.ErrSelfReferral)
		assert.Nil(t, next.ReferredBy)
		assert.Equal(t, u.Coins, next.Coins)
	})

	t.Run("SecondApplicationFails", func(t *testing.T) {
		u := testUser()

		first, err := ApplyReferral(u, "FRIEND123", settings)
		require.NoError(t, err)

		second, err := ApplyReferral(first, "OTHER456", settings)

		assert.ErrorIs(t, err, util.ErrReferralAlreadyApplied)
		// ReferredBy retains the first value.
		require.NotNil(t, second.ReferredBy)
		assert.Equal(t, "FRIEND123", *second.ReferredBy)
		assert.Equal(t, u.Coins+settings.ReferralReward, second.Coins)
	})

	t.Run("EmptyCode", func(t *testing.T) {
		u := testUser()

		_, err := ApplyReferral(u, "", settings)

		assert.ErrorIs(t, err, util.ErrInvalidInput)
	})
}
