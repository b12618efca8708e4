package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mockmate/mockmate-api/internal/config"
	"github.com/mockmate/mockmate-api/internal/generation"
	"github.com/mockmate/mockmate-api/internal/platform/postgres"
	"github.com/mockmate/mockmate-api/internal/service"
	"github.com/mockmate/mockmate-api/internal/service/auth"
	"github.com/mockmate/mockmate-api/internal/service/rotation"
	"github.com/mockmate/mockmate-api/internal/store"
)

// application holds the shared application dependencies to simplify wiring
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore     store.UserStore
	questionStore store.QuestionStore
	usageStore    store.UsageStore
	attemptStore  store.AttemptStore

	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier

	rotationService  rotation.RotationService
	attemptService   service.AttemptService
	analyticsService service.AnalyticsService

	generator generation.Generator
	fallback  generation.Generator
}

// newApplication creates an application instance with all dependencies
// initialized. The configuration, logger, and database connection must be
// established before calling this.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	hasher := auth.NewBcryptHasher()
	app.passwordHasher = hasher
	app.passwordVerifier = hasher

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.questionStore = postgres.NewPostgresQuestionStore(db, logger)
	app.usageStore = postgres.NewPostgresUsageStore(db, logger)
	app.attemptStore = postgres.NewPostgresAttemptStore(db, logger)

	app.rotationService = rotation.NewRotationService(
		db,
		app.questionStore,
		app.usageStore,
		logger,
	)
	app.attemptService = service.NewAttemptService(app.attemptStore, logger)
	app.analyticsService = service.NewAnalyticsService(app.attemptStore, logger)

	// The generative oracle is optional. When it cannot be configured the
	// generate endpoint falls back to drawing from the static catalog.
	app.fallback = generation.NewCatalogFallback(app.questionStore, logger)
	gen, err := generation.NewGeminiGenerator(
		ctx,
		logger.With(slog.String("component", "llm_generator")),
		cfg.LLM,
	)
	if err != nil {
		logger.Warn("LLM generator unavailable, using catalog fallback only",
			slog.String("error", err.Error()))
	} else {
		app.generator = gen
		logger.Info("LLM generator initialized successfully")
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// healthHandler reports liveness, including database reachability.
func (app *application) healthHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.db.PingContext(r.Context()); err != nil {
		app.logger.Error("Health check database ping failed", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		app.logger.Error("Failed to write health check response", slog.String("error", err.Error()))
	}
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("Application shutdown completed")
}
