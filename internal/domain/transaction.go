// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// WithdrawMethod identifies the payout channel of a withdrawal request.
type WithdrawMethod string

const (
	WithdrawMethodRecharge WithdrawMethod = "Recharge"
	WithdrawMethodBkash    WithdrawMethod = "Bkash"
	WithdrawMethodNagad    WithdrawMethod = "Nagad"
)

// Valid reports whether m is one of the supported payout methods.
func (m WithdrawMethod) Valid() bool {
	switch m {
	case WithdrawMethodRecharge, WithdrawMethodBkash, WithdrawMethodNagad:
		return true
	}
	return false
}

// TransactionStatus defines the lifecycle state of a withdrawal request.
// The core only ever creates Pending records; Success/Rejected transitions
// belong to an external back-office process.
type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "Pending"
	TransactionStatusSuccess  TransactionStatus = "Success"
	TransactionStatusRejected TransactionStatus = "Rejected"
)

// Transaction is an immutable withdrawal record.
type Transaction struct {
	ID            int64             `db:"id" json:"id"`           // Primary key, BIGSERIAL in DB
	UserID        string            `db:"user_id" json:"user_id"` // User UID
	Amount        decimal.Decimal   `db:"amount" json:"amount"`   // Currency units, NUMERIC(20, 2) in DB
	Coins         int64             `db:"coins" json:"coins"`     // Coin balance at request time
	Method        WithdrawMethod    `db:"method" json:"method"`
	AccountNumber string            `db:"account_number" json:"account_number"`
	Status        TransactionStatus `db:"status" json:"status"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
}

// NewTransaction creates a pending withdrawal record for the given user.
func NewTransaction(userID string, amount decimal.Decimal, coins int64, method WithdrawMethod, accountNumber string) *Transaction {
	return &Transaction{
		UserID:        userID,
		Amount:        amount,
		Coins:         coins,
		Method:        method,
		AccountNumber: accountNumber,
		Status:        TransactionStatusPending,
		CreatedAt:     time.Now().UTC(),
	}
}
