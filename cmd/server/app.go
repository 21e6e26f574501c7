package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scoring-api/internal/api"
	"github.com/phrazzld/scoring-api/internal/ciutil"
	"github.com/phrazzld/scoring-api/internal/config"
	"github.com/phrazzld/scoring-api/internal/platform/redis"
	"github.com/phrazzld/scoring-api/internal/service/auth"
	"github.com/phrazzld/scoring-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	store  *store.Client

	// Request handling
	checker    auth.TokenChecker
	dispatcher *api.Dispatcher
}

// newApplication creates a new application instance with all dependencies initialized.
// An unreachable store is logged and tolerated: scores are still computed
// and interests requests fail until the store comes back.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	backend, err := newBackend(ctx, cfg.Store, logger)
	if err != nil {
		return nil, err
	}
	app.store = store.NewClient(
		backend,
		store.PolicyFromConfig(cfg.Store),
		logger.With("component", "store"),
		store.OptionsFromConfig(cfg.Store)...,
	)

	app.checker = auth.NewTokenChecker(cfg.Auth)
	app.dispatcher = api.NewDispatcher(app.checker, app.store, app.store, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// newBackend creates the store backend selected by cfg.Driver.
func newBackend(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (store.Backend, error) {
	switch cfg.Driver {
	case "memory":
		logger.Warn("using in-memory store, data is not shared between processes")
		return store.NewMemoryBackend(), nil
	case "redis":
		backend, err := redis.New(cfg)
		if err != nil {
			return nil, err
		}
		addr := ciutil.MaskSensitiveValue(cfg.Addr)
		if err := backend.Ping(ctx); err != nil {
			logger.Warn("store is not reachable", "addr", addr, "error", err)
		} else {
			logger.Info("store connection established", "addr", addr)
		}
		return backend, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	// Set up router using the application dependencies
	router := app.setupRouter()

	// Start the HTTP server
	err := app.startHTTPServer(ctx, router)
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.store != nil {
		if err := app.store.Close(); err != nil {
			app.logger.Error("Error closing store connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
