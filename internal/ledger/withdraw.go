// internal/ledger/withdraw.go
package ledger

import (
	"github.com/shopspring/decimal"

	"earnify/internal/domain"
	"earnify/internal/util"
)

// Quote converts a coin balance to currency units at the configured rate,
// rounded half-up to two decimal places.
func Quote(coins int64, s domain.AdminSettings) decimal.Decimal {
	return decimal.NewFromInt(coins).Mul(s.CoinRate).Round(2)
}

// ValidateWithdrawal checks a withdrawal request against the method minimum
// and the account number requirement, returning the quoted amount. It never
// mutates the user; the balance zeroing is performed by the service inside
// the same storage transaction that records the withdrawal.
func ValidateWithdrawal(u domain.User, method domain.WithdrawMethod, accountNumber string, s domain.AdminSettings) (decimal.Decimal, error) {
	if !method.Valid() {
		return decimal.Zero, util.ErrInvalidInput
	}
	if accountNumber == "" {
		return decimal.Zero, util.ErrMissingAccountNumber
	}
	amount := Quote(u.Coins, s)
	if amount.LessThan(s.MinimumFor(method)) {
		return decimal.Zero, util.ErrBelowMinimum
	}
	return amount, nil
}
