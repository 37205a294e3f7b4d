// internal/ledger/withdraw_test.go
package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"earnify/internal/domain"
	"earnify/internal/util"
)

func TestQuote(t *testing.T) {
	settings := domain.DefaultAdminSettings()

	t.Run("FiveThousandCoinsAtDefaultRate", func(t *testing.T) {
		quote := Quote(5000, settings)
		assert.Equal(t, "50.00", quote.StringFixed(2))
	})

	t.Run("ZeroCoins", func(t *testing.T) {
		assert.True(t, Quote(0, settings).IsZero())
	})

	t.Run("HalfUpRounding", func(t *testing.T) {
		s := settings
		s.CoinRate = decimal.RequireFromString("0.005")

		// 5 * 0.005 = 0.025 rounds up to 0.03.
		assert.Equal(t, "0.03", Quote(5, s).StringFixed(2))
	})
}

func TestValidateWithdrawal(t *testing.T) {
	settings := domain.DefaultAdminSettings()

	t.Run("RechargeAboveMinimum", func(t *testing.T) {
		u := testUser()
		u.Coins = 5000 // quotes to 50.00, minRecharge is 20

		amount, err := ValidateWithdrawal(u, domain.WithdrawMethodRecharge, "01712345678", settings)

		assert.NoError(t, err)
		assert.Equal(t, "50.00", amount.StringFixed(2))
	})

	t.Run("BelowMethodMinimum", func(t *testing.T) {
		u := testUser()
		u.Coins = 3000 // quotes to 30.00, below the Bkash/Nagad minimum of 50

		_, err := ValidateWithdrawal(u, domain.WithdrawMethodBkash, "01712345678", settings)
		assert.ErrorIs(t, err, util.ErrBelowMinimum)

		// The same balance clears the Recharge minimum.
		_, err = ValidateWithdrawal(u, domain.WithdrawMethodRecharge, "01712345678", settings)
		assert.NoError(t, err)
	})

	t.Run("ZeroBalanceAlwaysBelowMinimum", func(t *testing.T) {
		u := testUser()
		u.Coins = 0

		_, err := ValidateWithdrawal(u, domain.WithdrawMethodRecharge, "01712345678", settings)
		assert.ErrorIs(t, err, util.ErrBelowMinimum)
	})

	t.Run("MissingAccountNumber", func(t *testing.T) {
		u := testUser()
		u.Coins = 1_000_000 // quote far above any minimum

		_, err := ValidateWithdrawal(u, domain.WithdrawMethodNagad, "", settings)
		assert.ErrorIs(t, err, util.ErrMissingAccountNumber)
	})

	t.Run("UnknownMethod", func(t *testing.T) {
		u := testUser()
		u.Coins = 5000

		_, err := ValidateWithdrawal(u, domain.WithdrawMethod("Paypal"), "acct", settings)
		assert.ErrorIs(t, err, util.ErrInvalidInput)
	})
}
