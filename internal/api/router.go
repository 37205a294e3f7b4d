// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"earnify/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(economyHandler *handler.EconomyHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Post("/users", economyHandler.CreateUser)

	r.Route("/users/{userID}", func(r chi.Router) {
		r.Get("/", economyHandler.GetUser)
		r.Get("/balance", economyHandler.GetBalance)

		r.Post("/check-in", economyHandler.DailyCheckIn)
		r.Post("/tasks/{task}", economyHandler.CompleteTask)
		r.Post("/spin", economyHandler.Spin)
		r.Post("/spin/unlock", economyHandler.UnlockBonusSpin)
		r.Post("/referral", economyHandler.ApplyReferral)

		r.Post("/withdrawals", economyHandler.RequestWithdrawal)
		r.Get("/withdrawals", economyHandler.GetTransactionHistory)
	})

	return r
}
