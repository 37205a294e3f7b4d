// internal/repository/postgres/user_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"earnify/internal/domain"
	"earnify/internal/repository"
	"earnify/internal/util"

	"github.com/jmoiron/sqlx"
)

// UserRepository implements repository.UserRepository for PostgreSQL.
type UserRepository struct {
	// Methods receive a DBExecutor directly, so no *sqlx.DB is held here.
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &UserRepository{}
}

const userColumns = `uid, name, username, phone_number, coins, invite_code, referred_by,
	total_invites, active_invites, invite_earnings,
	last_daily_check_in, daily_spins_used, last_spin_day, extra_spins_available, created_at`

// CreateUser inserts a new user into the database using the provided DBExecutor.
func (r *UserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	query := `INSERT INTO users (` + userColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := q.ExecContext(ctx, query,
		user.UID,
		user.Name,
		user.Username,
		user.PhoneNumber,
		user.Coins,
		user.InviteCode,
		user.ReferredBy,
		user.TotalInvites,
		user.ActiveInvites,
		user.InviteEarnings,
		user.LastDailyCheckIn,
		user.DailySpinsUsed,
		user.LastSpinDay,
		user.ExtraSpinsAvailable,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByUID retrieves a user by their UID using the provided DBExecutor.
func (r *UserRepository) GetUserByUID(ctx context.Context, q repository.DBExecutor, uid string) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	err := q.GetContext(ctx, &user, query, uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by UID %s: %w", uid, err)
	}
	return &user, nil
}

// GetUserByPhoneNumber retrieves a user by their phone number using the provided DBExecutor.
func (r *UserRepository) GetUserByPhoneNumber(ctx context.Context, q repository.DBExecutor, phoneNumber string) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1`
	err := q.GetContext(ctx, &user, query, phoneNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by phone number '%s': %w", phoneNumber, err)
	}
	return &user, nil
}

// GetUserByInviteCode retrieves a user by their invite code using the provided DBExecutor.
func (r *UserRepository) GetUserByInviteCode(ctx context.Context, q repository.DBExecutor, code string) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE invite_code = $1`
	err := q.GetContext(ctx, &user, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by invite code '%s': %w", code, err)
	}
	return &user, nil
}

// UpdateUser writes the user's mutable economy fields back as one snapshot.
// Identity fields (uid, phone number, invite code, created_at) never change.
func (r *UserRepository) UpdateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	query := `UPDATE users SET
				coins = $1,
				referred_by = $2,
				total_invites = $3,
				active_invites = $4,
				invite_earnings = $5,
				last_daily_check_in = $6,
				daily_spins_used = $7,
				last_spin_day = $8,
				extra_spins_available = $9
			  WHERE uid = $10`
	result, err := q.ExecContext(ctx, query,
		user.Coins,
		user.ReferredBy,
		user.TotalInvites,
		user.ActiveInvites,
		user.InviteEarnings,
		user.LastDailyCheckIn,
		user.DailySpinsUsed,
		user.LastSpinDay,
		user.ExtraSpinsAvailable,
		user.UID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.UID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating user %s: %w", user.UID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
