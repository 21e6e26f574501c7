// Package main implements the entry point for the scoring API server,
// which answers online_score and clients_interests method calls over HTTP.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/phrazzld/scoring-api/internal/config"
	"github.com/phrazzld/scoring-api/internal/platform/logger"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "scoring-api: %v\n", err)
		os.Exit(1)
	}
}

// run parses the command line, sets up logging and serves until the process
// is asked to stop.
func run(ctx context.Context, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	log, closer, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	defer func() { _ = closer.Close() }()

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"store_driver", cfg.Store.Driver)

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// loadConfig parses command-line flags and loads the configuration.
func loadConfig(args []string) (*config.Config, error) {
	flags := config.NewFlagSet("scoring-api")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
