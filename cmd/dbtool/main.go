// Command dbtool creates the database schema and seeds historical flood
// records from a JSON file.
//
// Usage:
//
//	DATABASE_URL=postgres://... SEED_PATH=data/seeds/flood_records.json go run ./cmd/dbtool
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"

	"github.com/couchcryptid/rain-alert-service/internal/adapter/postgres"
	"github.com/couchcryptid/rain-alert-service/internal/config"
	"github.com/couchcryptid/rain-alert-service/internal/observability"
)

const defaultSeedPath = "data/seeds/flood_records.json"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := observability.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seedPath := sharedcfg.EnvOrDefault("SEED_PATH", defaultSeedPath)
	if err := initAndSeed(ctx, cfg.DatabaseURL, seedPath, logger); err != nil {
		logger.Error("dbtool failed", "error", err)
		os.Exit(1)
	}
}

func initAndSeed(ctx context.Context, databaseURL, seedPath string, logger *slog.Logger) error {
	db, err := postgres.Open(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Info("initializing database schema")
	if err := postgres.InitSchema(ctx, db); err != nil {
		return err
	}

	logger.Info("seeding flood records", "path", seedPath)
	if err := postgres.SeedFromJSON(ctx, db, seedPath); err != nil {
		return err
	}
	logger.Info("seeding complete")
	return nil
}
