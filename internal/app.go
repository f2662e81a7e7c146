// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	router "crowdfund-api/internal/api"
	"crowdfund-api/internal/api/handler"
	"crowdfund-api/internal/auth"
	"crowdfund-api/internal/config"
	"crowdfund-api/internal/repository"
	"crowdfund-api/internal/repository/postgres"
	"crowdfund-api/internal/service"
	"crowdfund-api/internal/util"
	"crowdfund-api/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	UserRepository       repository.UserRepository
	ProjectRepository    repository.ProjectRepository
	InvestmentRepository repository.InvestmentRepository

	// Services
	Tokens            *auth.JWTManager
	AccountService    service.AccountService
	ProjectService    service.ProjectService
	InvestmentService service.InvestmentService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{Logger: slog.Default()}
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
	util.InitLogger(cfg.LogLevel)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.",
		"port", cfg.ServerPort,
		"db_host", cfg.DB.Host,
		"db_name", cfg.DB.DBName,
		"auto_migrate", cfg.AutoMigrate,
		"jwt_ttl", cfg.JWTTTL.String(),
		"cors_origins", cfg.AllowedOrigins,
	)

	// Amounts travel as JSON numbers, matching the {"amount": number} request shape.
	decimal.MarshalJSONWithoutQuotes = true

	// 3. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	if app.Config.AutoMigrate {
		version, err := db.Migrate(app.DB)
		if err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		app.Logger.Info("Database schema is up to date.", "version", version)
	}

	// 4. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository()
	app.ProjectRepository = postgres.NewProjectRepository()
	app.InvestmentRepository = postgres.NewInvestmentRepository()
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize Services
	tokens, err := auth.NewJWTManager(app.Config.JWTSecret, app.Config.JWTTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize token manager: %w", err)
	}
	app.Tokens = tokens

	app.AccountService = service.NewAccountService(app.DB, app.UserRepository, app.Tokens, bcrypt.DefaultCost)
	// Pass the concrete db.BeginTx, db.CommitTx, db.RollbackTx functions from pkg/db
	app.ProjectService = service.NewProjectService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.UserRepository,
		app.ProjectRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.InvestmentService = service.NewInvestmentService(
		app.DB,
		app.DB,
		app.UserRepository,
		app.ProjectRepository,
		app.InvestmentRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.Logger.Info("Services initialized.")

	// 6. Initialize HTTP Handlers and Router
	handlers := router.Handlers{
		Accounts:    handler.NewAccountHandler(app.AccountService, app.Logger),
		Projects:    handler.NewProjectHandler(app.ProjectService, app.Logger),
		Investments: handler.NewInvestmentHandler(app.InvestmentService, app.Logger),
	}
	app.HTTPHandler = router.NewRouter(handlers, app.Tokens, app.Config.AllowedOrigins, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
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
