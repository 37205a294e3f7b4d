// internal/service/economy_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"earnify/internal/domain"
	"earnify/internal/events"
	"earnify/internal/gate"
	"earnify/internal/ledger"
	"earnify/internal/repository"
	"earnify/internal/util"
	"earnify/pkg/db"

	"github.com/shopspring/decimal"
)

// EconomyService defines the business logic of the coin economy: gated
// earning actions, the spin engine, referral accounting and withdrawals.
type EconomyService interface {
	CreateUser(ctx context.Context, name, username, phoneNumber string) (*domain.User, error)
	GetUser(ctx context.Context, uid string) (*domain.User, error)
	GetBalance(ctx context.Context, uid string) (*domain.User, decimal.Decimal, error)

	DailyCheckIn(ctx context.Context, uid string) (*domain.User, error)
	CompleteTask(ctx context.Context, uid string, task ledger.Task) (*domain.User, int64, error)
	Spin(ctx context.Context, uid string) (*domain.User, int64, error)
	UnlockBonusSpin(ctx context.Context, uid string) (*domain.User, error)
	ApplyReferral(ctx context.Context, uid, code string) (*domain.User, error)

	RequestWithdrawal(ctx context.Context, uid string, method domain.WithdrawMethod, accountNumber string) (*domain.User, *domain.Transaction, error)
	GetTransactionHistory(ctx context.Context, uid string, limit, offset int) ([]domain.Transaction, int64, error)
}

// economyService implements the EconomyService interface. All user mutations
// follow the same shape: read the snapshot inside a DB transaction, run the
// pure ledger transition, write the new snapshot back, commit.
type economyService struct {
	dbBeginner db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)

	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
	publisher       events.Publisher
	gates           *gate.Tracker
	settings        domain.AdminSettings
	logger          *slog.Logger

	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc

	rngMu sync.Mutex
	rng   *rand.Rand // Injected random source for spin draws and invite codes
	now   func() time.Time
}

// NewEconomyService creates a new instance of EconomyService.
func NewEconomyService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
	publisher events.Publisher,
	gates *gate.Tracker,
	settings domain.AdminSettings,
	logger *slog.Logger,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	rng *rand.Rand,
	now func() time.Time,
) EconomyService {
	if now == nil {
		now = time.Now
	}
	return &economyService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		publisher:       publisher,
		gates:           gates,
		settings:        settings,
		logger:          logger,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
		rng:             rng,
		now:             now,
	}
}

// CreateUser provisions a new user record with a fresh UID and invite code.
// Credentials are the identity provider's concern, not stored here.
func (s *economyService) CreateUser(ctx context.Context, name, username, phoneNumber string) (*domain.User, error) {
	if name == "" || username == "" || phoneNumber == "" {
		return nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("create user: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create user: transaction controller does not implement DBExecutor")
	}

	_, err = s.userRepo.GetUserByPhoneNumber(ctx, txExecutor, phoneNumber)
	if err == nil {
		return nil, util.ErrDuplicateEntry
	}
	if !errors.Is(err, util.ErrNotFound) {
		return nil, fmt.Errorf("create user: failed to check existing user: %w", err)
	}

	s.rngMu.Lock()
	user := domain.NewUser(name, username, phoneNumber, s.rng)
	s.rngMu.Unlock()

	if err := s.userRepo.CreateUser(ctx, txExecutor, user); err != nil {
		return nil, fmt.Errorf("create user: failed to create user: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create user: failed to commit transaction: %w", err)
	}

	return user, nil
}

// GetUser returns the user's current snapshot.
func (s *economyService) GetUser(ctx context.Context, uid string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByUID(ctx, s.dbExecutor, uid)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: failed to get user %s: %w", uid, err)
	}
	return user, nil
}

// GetBalance returns the user's snapshot together with the currency quote of
// the current coin balance.
func (s *economyService) GetBalance(ctx context.Context, uid string) (*domain.User, decimal.Decimal, error) {
	user, err := s.GetUser(ctx, uid)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return user, ledger.Quote(user.Coins, s.settings), nil
}

// mutateUser runs a pure ledger transition against the user's stored
// snapshot inside a database transaction.
func (s *economyService) mutateUser(ctx context.Context, op, uid string, transition func(domain.User) (domain.User, error)) (*domain.User, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("%s: transaction controller does not implement DBExecutor", op)
	}

	user, err := s.userRepo.GetUserByUID(ctx, txExecutor, uid)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: failed to get user %s: %w", op, uid, err)
	}

	next, err := transition(*user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateUser(ctx, txExecutor, &next); err != nil {
		return nil, fmt.Errorf("%s: failed to update user %s: %w", op, uid, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return &next, nil
}

// DailyCheckIn credits the daily check-in reward, once per calendar day.
func (s *economyService) DailyCheckIn(ctx context.Context, uid string) (*domain.User, error) {
	return s.mutateUser(ctx, "daily check-in", uid, func(u domain.User) (domain.User, error) {
		return ledger.DailyCheckIn(u, s.settings, s.now())
	})
}

func slotForTask(task ledger.Task) gate.Slot {
	switch task {
	case ledger.TaskWatchAd:
		return gate.SlotWatch
	case ledger.TaskClickTask:
		return gate.SlotClick
	default:
		return gate.SlotVisit
	}
}

// CompleteTask runs the full dwell gate for the task and credits its flat
// reward once the gate completes. A canceled context (the caller navigating
// away) cancels the gate and nothing is credited.
func (s *economyService) CompleteTask(ctx context.Context, uid string, task ledger.Task) (*domain.User, int64, error) {
	reward, err := task.Reward(s.settings)
	if err != nil {
		return nil, 0, err
	}

	// The user must exist before we make them sit through the dwell window.
	if _, err := s.GetUser(ctx, uid); err != nil {
		return nil, 0, err
	}

	g, release, err := s.gates.Begin(uid, slotForTask(task), task.DwellSeconds(s.settings))
	if err != nil {
		return nil, 0, err
	}
	defer release()

	if !g.Wait(ctx) {
		return nil, 0, util.ErrGateCanceled
	}

	user, err := s.mutateUser(ctx, "complete task", uid, func(u domain.User) (domain.User, error) {
		return ledger.CreditTask(u, task, s.settings)
	})
	if err != nil {
		return nil, 0, err
	}
	return user, reward, nil
}

// Spin consumes a free daily slot or a bonus slot and credits a reward drawn
// uniformly from the configured table.
func (s *economyService) Spin(ctx context.Context, uid string) (*domain.User, int64, error) {
	var reward int64
	user, err := s.mutateUser(ctx, "spin", uid, func(u domain.User) (domain.User, error) {
		s.rngMu.Lock()
		defer s.rngMu.Unlock()
		next, r, err := ledger.Spin(u, s.rng, s.settings, s.now())
		reward = r
		return next, err
	})
	if err != nil {
		return nil, 0, err
	}
	return user, reward, nil
}

// UnlockBonusSpin grants one bonus-spin slot after the user sits through an
// ad dwell gate. The cap is checked up front so nobody watches an ad for a
// grant that cannot be applied.
func (s *economyService) UnlockBonusSpin(ctx context.Context, uid string) (*domain.User, error) {
	current, err := s.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	if current.ExtraSpinsAvailable >= domain.MaxBonusSpins {
		return nil, util.ErrMaxBonusSpinsReached
	}

	g, release, err := s.gates.Begin(uid, gate.SlotUnlockSpin, s.settings.AdDuration)
	if err != nil {
		return nil, err
	}
	defer release()

	if !g.Wait(ctx) {
		return nil, util.ErrGateCanceled
	}

	return s.mutateUser(ctx, "unlock bonus spin", uid, ledger.UnlockBonusSpin)
}

// ApplyReferral applies a referral code to the user, credits the referral
// reward and publishes a ReferralApplied event for the external process that
// credits the referrer's invite counters.
func (s *economyService) ApplyReferral(ctx context.Context, uid, code string) (*domain.User, error) {
	user, err := s.mutateUser(ctx, "apply referral", uid, func(u domain.User) (domain.User, error) {
		next, err := ledger.ApplyReferral(u, code, s.settings)
		if err != nil {
			return u, err
		}
		// The code must belong to a real user; the validation order keeps
		// state errors (already applied, self referral) ahead of lookups.
		if _, lookupErr := s.userRepo.GetUserByInviteCode(ctx, s.dbExecutor, code); lookupErr != nil {
			if util.IsError(lookupErr, util.ErrNotFound) {
				return u, util.ErrInvalidInput
			}
			return u, fmt.Errorf("apply referral: failed to look up invite code: %w", lookupErr)
		}
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	event := events.ReferralApplied{
		ReferrerCode: code,
		UserID:       uid,
		Reward:       s.settings.ReferralReward,
		AppliedAt:    s.now().UTC(),
	}
	if err := s.publisher.Publish(event); err != nil {
		// The applying side is already committed; the reconciler can replay.
		s.logger.Error("Failed to publish referral event", "user", uid, "error", err)
	}

	return user, nil
}

// RequestWithdrawal converts the full coin balance into a pending withdrawal.
// The transaction record insert and the balance zeroing are one database
// transaction: a storage failure rolls both back, so the balance is never
// zeroed without a committed withdrawal record.
func (s *economyService) RequestWithdrawal(ctx context.Context, uid string, method domain.WithdrawMethod, accountNumber string) (*domain.User, *domain.Transaction, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("withdraw: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("withdraw: transaction controller does not implement DBExecutor")
	}

	user, err := s.userRepo.GetUserByUID(ctx, txExecutor, uid)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, nil, util.ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("withdraw: failed to get user %s: %w", uid, err)
	}

	amount, err := ledger.ValidateWithdrawal(*user, method, accountNumber, s.settings)
	if err != nil {
		return nil, nil, err
	}

	transaction := domain.NewTransaction(uid, amount, user.Coins, method, accountNumber)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, nil, fmt.Errorf("withdraw: failed to create transaction: %w", err)
	}

	next := *user
	next.Coins = 0
	if err := s.userRepo.UpdateUser(ctx, txExecutor, &next); err != nil {
		return nil, nil, fmt.Errorf("withdraw: failed to zero balance for user %s: %w", uid, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("withdraw: failed to commit transaction: %w", err)
	}

	return &next, transaction, nil
}

// GetTransactionHistory retrieves the user's withdrawal history, newest first.
func (s *economyService) GetTransactionHistory(ctx context.Context, uid string, limit, offset int) ([]domain.Transaction, int64, error) {
	if _, err := s.GetUser(ctx, uid); err != nil {
		return nil, 0, err
	}

	transactions, totalCount, err := s.transactionRepo.GetTransactionsByUserID(ctx, s.dbExecutor, uid, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve transaction history: %w", err)
	}

	return transactions, totalCount, nil
}
