// internal/api/handler/economy.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"earnify/internal/api/types"
	"earnify/internal/domain"
	"earnify/internal/ledger"
	"earnify/internal/service"
	"earnify/internal/util"
)

// DefaultTimeout bounds a request's lifetime. It must exceed the longest
// configurable dwell window since task requests hold the connection open
// while the gate counts down.
const DefaultTimeout = 120 * time.Second

// EconomyHandler handles HTTP requests for the coin economy.
type EconomyHandler struct {
	service service.EconomyService
	logger  *slog.Logger
}

// NewEconomyHandler creates a new EconomyHandler.
func NewEconomyHandler(svc service.EconomyService, logger *slog.Logger) *EconomyHandler {
	return &EconomyHandler{
		service: svc,
		logger:  logger,
	}
}

// Helper function to send JSON responses.
func (h *EconomyHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses.
func (h *EconomyHandler) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput),
		util.IsError(err, util.ErrMissingAccountNumber),
		util.IsError(err, util.ErrSelfReferral):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrNotFound), util.IsError(err, util.ErrUserNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	case util.IsError(err, util.ErrDuplicateEntry):
		statusCode = http.StatusConflict
		message = err.Error()
	case util.IsError(err, util.ErrAlreadyCheckedIn),
		util.IsError(err, util.ErrNoSpinsLeft),
		util.IsError(err, util.ErrMaxBonusSpinsReached),
		util.IsError(err, util.ErrReferralAlreadyApplied),
		util.IsError(err, util.ErrGateActive):
		statusCode = http.StatusConflict
		message = err.Error()
	case util.IsError(err, util.ErrGateCanceled):
		statusCode = http.StatusRequestTimeout
		message = err.Error()
	case util.IsError(err, util.ErrBelowMinimum):
		statusCode = http.StatusPaymentRequired // 402 Payment Required
		message = err.Error()
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, map[string]string{"error": message})
}

// CreateUserRequest represents the request body for user provisioning.
type CreateUserRequest struct {
	Name        string `json:"name"`
	Username    string `json:"username"`
	PhoneNumber string `json:"phone_number"`
}

// CreateUser handles user provisioning.
// POST /users
func (h *EconomyHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	user, err := h.service.CreateUser(r.Context(), req.Name, req.Username, req.PhoneNumber)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, user)
}

// GetUser returns the user's current snapshot.
// GET /users/{userID}
func (h *EconomyHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, user)
}

// GetBalance returns the coin balance and its currency quote.
// GET /users/{userID}/balance
func (h *EconomyHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	user, quote, err := h.service.GetBalance(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"uid":    user.UID,
		"coins":  user.Coins,
		"amount": quote,
	})
}

// DailyCheckIn handles the daily check-in action.
// POST /users/{userID}/check-in
func (h *EconomyHandler) DailyCheckIn(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.DailyCheckIn(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Check-in successful",
		"coins":   user.Coins,
	})
}

// CompleteTask runs a gated earning task. The response is sent only after
// the dwell window elapsed; closing the connection cancels the gate.
// POST /users/{userID}/tasks/{task}
func (h *EconomyHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	task := ledger.Task(chi.URLParam(r, "task"))

	user, reward, err := h.service.CompleteTask(r.Context(), chi.URLParam(r, "userID"), task)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Task completed",
		"reward":  reward,
		"coins":   user.Coins,
	})
}

// Spin consumes a spin slot and returns the drawn reward.
// POST /users/{userID}/spin
func (h *EconomyHandler) Spin(w http.ResponseWriter, r *http.Request) {
	user, reward, err := h.service.Spin(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reward":                reward,
		"coins":                 user.Coins,
		"daily_spins_used":      user.DailySpinsUsed,
		"extra_spins_available": user.ExtraSpinsAvailable,
	})
}

// UnlockBonusSpin grants a bonus-spin slot after an ad dwell gate.
// POST /users/{userID}/spin/unlock
func (h *EconomyHandler) UnlockBonusSpin(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.UnlockBonusSpin(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":               "Bonus spin unlocked",
		"extra_spins_available": user.ExtraSpinsAvailable,
	})
}

// ApplyReferralRequest represents the request body for applying a referral code.
type ApplyReferralRequest struct {
	Code string `json:"code"`
}

// ApplyReferral applies a referral code to the user.
// POST /users/{userID}/referral
func (h *EconomyHandler) ApplyReferral(w http.ResponseWriter, r *http.Request) {
	var req ApplyReferralRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	user, err := h.service.ApplyReferral(r.Context(), chi.URLParam(r, "userID"), req.Code)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Referral applied",
		"coins":       user.Coins,
		"referred_by": user.ReferredBy,
	})
}

// WithdrawRequest represents the request body for a withdrawal request.
type WithdrawRequest struct {
	Method        domain.WithdrawMethod `json:"method"`
	AccountNumber string                `json:"account_number"`
}

// RequestWithdrawal converts the full balance into a pending withdrawal.
// POST /users/{userID}/withdrawals
func (h *EconomyHandler) RequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	user, transaction, err := h.service.RequestWithdrawal(r.Context(), chi.URLParam(r, "userID"), req.Method, req.AccountNumber)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message":        "Withdrawal request submitted",
		"transaction_id": transaction.ID,
		"amount":         transaction.Amount,
		"status":         transaction.Status,
		"coins":          user.Coins,
	})
}

// GetTransactionHistory returns the paginated withdrawal history, newest first.
// GET /users/{userID}/withdrawals
func (h *EconomyHandler) GetTransactionHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	transactions, totalCount, err := h.service.GetTransactionHistory(r.Context(), chi.URLParam(r, "userID"), limit, offset)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.PaginatedResponse[domain.Transaction]{
		Data:       transactions,
		Limit:      limit,
		Offset:     offset,
		TotalCount: totalCount,
	})
}
