// internal/repository/user_repo.go
package repository

import (
	"context"

	"earnify/internal/domain"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// CreateUser adds a new user record using the provided DBExecutor.
	CreateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// GetUserByUID retrieves a user by their UID using the provided DBExecutor.
	GetUserByUID(ctx context.Context, q DBExecutor, uid string) (*domain.User, error)
	// GetUserByPhoneNumber retrieves a user by their unique phone number.
	GetUserByPhoneNumber(ctx context.Context, q DBExecutor, phoneNumber string) (*domain.User, error)
	// GetUserByInviteCode retrieves a user by their unique invite code.
	GetUserByInviteCode(ctx context.Context, q DBExecutor, code string) (*domain.User, error)
	// UpdateUser persists a full snapshot of the user's mutable economy fields.
	UpdateUser(ctx context.Context, q DBExecutor, user *domain.User) error
}
