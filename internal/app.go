// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	router "earnify/internal/api"
	"earnify/internal/api/handler"
	"earnify/internal/config"
	"earnify/internal/events"
	"earnify/internal/gate"
	"earnify/internal/repository"
	"earnify/internal/repository/postgres"
	"earnify/internal/service"
	"earnify/internal/util"
	"earnify/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	UserRepository        repository.UserRepository
	TransactionRepository repository.TransactionRepository

	// Event fan-out
	Publisher events.Publisher

	// Services
	EconomyService service.EconomyService

	// HTTP API
	HTTPHandler http.Handler

	natsPublisher *events.NATSPublisher // Retained for shutdown; nil when events are disabled
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database and apply migrations
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	if err := db.MigrateUp(app.DB); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	app.Logger.Info("Database schema up to date.")

	// 4. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.TransactionRepository = postgres.NewTransactionRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize Event Publisher (NATS when configured, noop otherwise)
	if app.Config.NATSURL != "" {
		natsPublisher, err := events.NewNATSPublisher(app.Config.NATSURL, "earnify", app.Logger)
		if err != nil {
			return fmt.Errorf("failed to initialize NATS publisher: %w", err)
		}
		app.natsPublisher = natsPublisher
		app.Publisher = natsPublisher
		app.Logger.Info("NATS event publisher initialized.", "url", app.Config.NATSURL)
	} else {
		app.Publisher = events.NewNoopPublisher()
		app.Logger.Info("Event publishing disabled (NATS_URL not set).")
	}

	// 6. Initialize Services
	app.EconomyService = service.NewEconomyService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.UserRepository,
		app.TransactionRepository,
		app.Publisher,
		gate.NewTracker(),
		app.Config.Settings,
		app.Logger,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		rand.New(rand.NewSource(time.Now().UnixNano())),
		time.Now,
	)
	app.Logger.Info("Services initialized.")

	// 7. Initialize HTTP Handlers and Router
	economyHandler := handler.NewEconomyHandler(app.EconomyService, app.Logger)
	app.HTTPHandler = router.NewRouter(economyHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.natsPublisher != nil {
		if err := app.natsPublisher.Close(); err != nil {
			app.Logger.Error("Failed to close NATS connection", "error", err)
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
