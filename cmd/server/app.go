package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/lexicard/lexicard-api/internal/config"
	"github.com/lexicard/lexicard-api/internal/generation"
	"github.com/lexicard/lexicard-api/internal/metrics"
	"github.com/lexicard/lexicard-api/internal/platform/gemini"
	"github.com/lexicard/lexicard-api/internal/platform/postgres"
	"github.com/lexicard/lexicard-api/internal/pronunciation"
	"github.com/lexicard/lexicard-api/internal/service"
	"github.com/lexicard/lexicard-api/internal/service/auth"
	"github.com/lexicard/lexicard-api/internal/store"
	"github.com/lexicard/lexicard-api/internal/timeout"
)

// application holds the shared dependencies of the server so they can be
// wired once and released together on shutdown.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	db      *sql.DB
	metrics *metrics.Metrics

	userStore      store.UserStore
	wordStore      store.WordStore
	wordGroupStore store.WordGroupStore
	deviceStore    store.DeviceStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	apiKeys          *auth.APIKeyAuthenticator

	wordService       service.WordService
	wordGroupService  service.WordGroupService
	generationService service.GenerationService
	deviceService     service.DeviceService

	scheduler *timeout.Scheduler
}

// newApplication wires stores, services and the timeout scheduler. Nothing
// is started; Run does that.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	if logger == nil {
		logger = slog.Default()
	}
	app := &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		metrics: metrics.New(),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BCryptCost, logger)
	app.wordStore = postgres.NewPostgresWordStore(db, logger)
	app.wordGroupStore = postgres.NewPostgresWordGroupStore(db, logger)
	app.deviceStore = postgres.NewPostgresDeviceStore(db, logger)
	app.apiKeys = auth.NewAPIKeyAuthenticator(app.deviceStore)

	var pronouncer service.Pronouncer
	if cfg.Pronunciation.Enabled {
		pronouncer = pronunciation.NewClient(cfg.Pronunciation, logger)
		logger.Info("pronunciation lookup enabled", slog.String("base_url", cfg.Pronunciation.BaseURL))
	}

	var generator generation.Generator
	if cfg.LLM.GeminiAPIKey != "" {
		g, err := gemini.NewGenerator(ctx, cfg.LLM, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize word generator: %w", err)
		}
		generator = g
		logger.Info("word generation enabled", slog.String("model", cfg.LLM.ModelName))
	} else {
		logger.Warn("no Gemini API key configured, word generation is disabled")
	}

	app.wordGroupService, err = service.NewWordGroupService(db, app.wordGroupStore, app.wordStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create word group service: %w", err)
	}
	app.wordService, err = service.NewWordService(db, app.wordStore, app.wordGroupStore, pronouncer, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create word service: %w", err)
	}
	app.generationService, err = service.NewGenerationService(generator, app.wordGroupService, app.wordService, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %w", err)
	}
	app.deviceService, err = service.NewDeviceService(app.deviceStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create device service: %w", err)
	}

	sweeper := timeout.NewSweeper(app.wordStore, logger)
	app.scheduler, err = timeout.NewScheduler(sweeper.Sweep, timeout.SchedulerConfig{
		Interval: time.Duration(cfg.Timeout.SweepIntervalMinutes) * time.Minute,
		Deadline: time.Duration(cfg.Timeout.SweepDeadlineSeconds) * time.Second,
	}, app.metrics, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create timeout scheduler: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// Run starts the timeout scheduler and serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start timeout scheduler: %w", err)
	}

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup stops background work and closes the database.
func (app *application) cleanup() {
	if app.scheduler != nil {
		app.scheduler.Stop()
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
