// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"earnify/internal/domain"
)

// TransactionRepository defines the interface for withdrawal record operations.
type TransactionRepository interface {
	// CreateTransaction adds a new withdrawal record using the provided DBExecutor.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// GetTransactionsByUserID retrieves withdrawal history for a user,
	// newest first, along with the total record count.
	GetTransactionsByUserID(ctx context.Context, q DBExecutor, userID string, limit, offset int) ([]domain.Transaction, int64, error)
}
