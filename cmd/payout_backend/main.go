package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/lingueefy/coach-payout-service/internal/adapters/stripeconnect"
	"github.com/lingueefy/coach-payout-service/internal/core/services"
	"github.com/lingueefy/coach-payout-service/internal/handlers"
	"github.com/lingueefy/coach-payout-service/internal/middleware"
	"github.com/lingueefy/coach-payout-service/internal/repositories/database/pgsql"
	"github.com/lingueefy/coach-payout-service/internal/utils"
	"github.com/lingueefy/coach-payout-service/pkg/config"
	"github.com/lingueefy/coach-payout-service/pkg/database"
	"github.com/lingueefy/coach-payout-service/pkg/resilience"
)

// @title Lingueefy Coach Payout API
// @version 1.0
// @description Coach payout ledger and reconciliation service for the Lingueefy platform.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Analytics sink; inert when no API key is configured.
	analytics := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer analytics.Close()

	// Payment gateway client and the retry profile for its eligibility reads.
	// The gateway's own classifier knows which decline codes are permanent.
	gateway := stripeconnect.NewClient(cfg.StripeSecretKey)
	paymentRetry := resilience.PaymentPolicy()
	paymentRetry.IsRetryable = stripeconnect.IsRetryable

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, gateway, analytics, paymentRetry)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting, analytics)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())
	r.Use(middleware.RateLimit(newRateLimiter(logger)))
	r.Use(middleware.PosthogMiddleware(analytics))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations over a temporary
// database/sql connection compatible with the main pgx pool.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// newRateLimiter builds an in-memory IP rate limiter for the API surface.
func newRateLimiter(logger *slog.Logger) *limiter.Limiter {
	rate, err := limiter.NewRateFromFormatted("300-M")
	if err != nil {
		logger.Error("Failed to parse rate limit", slog.String("error", err.Error()))
		os.Exit(1)
	}
	return limiter.New(memory.NewStore(), rate)
}
