package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/joho/godotenv"

	"github.com/couchcryptid/rain-alert-service/internal/adapter/expo"
	httpadapter "github.com/couchcryptid/rain-alert-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/rain-alert-service/internal/adapter/kafka"
	"github.com/couchcryptid/rain-alert-service/internal/adapter/nominatim"
	"github.com/couchcryptid/rain-alert-service/internal/adapter/postgres"
	redisadapter "github.com/couchcryptid/rain-alert-service/internal/adapter/redis"
	"github.com/couchcryptid/rain-alert-service/internal/config"
	"github.com/couchcryptid/rain-alert-service/internal/domain"
	"github.com/couchcryptid/rain-alert-service/internal/observability"
	"github.com/couchcryptid/rain-alert-service/internal/pipeline"
)

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
	if err := run(cfg, logger); err != nil {
		logger.Error("service failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewMetrics()

	shutdownTracing, err := observability.InitTracing(ctx, cfg, logger)
	if err != nil {
		return err
	}

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := postgres.InitSchema(ctx, db); err != nil {
		return err
	}
	store := postgres.NewStore(db)

	redisClient := redisadapter.NewClient(cfg)
	defer redisClient.Close()
	inbox := redisadapter.NewInboxStore(redisClient)

	// Geocoding is feature-flagged via NOMINATIM_ENABLED.
	var geocoder domain.Geocoder
	if cfg.NominatimEnabled {
		client := nominatim.NewClient(cfg, metrics, logger)
		geocoder = nominatim.NewCachedGeocoder(client, cfg.NominatimCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("nominatim geocoding enabled",
			"base_url", cfg.NominatimBaseURL,
			"cache_size", cfg.NominatimCacheSize,
			"timeout", cfg.NominatimTimeout,
		)
	} else {
		logger.Info("nominatim geocoding disabled")
	}

	pushClient := expo.NewClient(cfg, metrics, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)

	srv := httpadapter.NewServer(cfg.HTTPAddr, httpadapter.Deps{
		Users:           store,
		Reports:         store,
		Records:         store,
		Publisher:       writer,
		Geocoder:        geocoder,
		Push:            pushClient,
		Inbox:           inbox,
		Planner:         domain.NewRoutePlanner(domain.NewRouteGenerator(nil)),
		Predictor:       domain.NewPredictor(nil),
		Ready:           readinessGroup{store, inbox},
		FloodAreaWindow: cfg.FloodAreaWindow,
	}, logger, metrics)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	var reader *kafkaadapter.Reader
	dispatcherDone := make(chan struct{})
	if cfg.AlertsEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)
		transformer := pipeline.NewTransformer(cfg.AlertMinLevel, geocoder, logger)
		loader := pipeline.NewPushLoader(store, pushClient, inbox, logger)
		p := pipeline.New(reader, transformer, loader, logger, metrics, cfg.BatchSize)

		go func() {
			defer close(dispatcherDone)
			if err := p.Run(ctx); err != nil {
				logger.Error("alert dispatcher error", "error", err)
			}
		}()
		logger.Info("alert dispatcher enabled", "topic", cfg.KafkaReportTopic, "min_level", cfg.AlertMinLevel.String())
	} else {
		close(dispatcherDone)
		logger.Info("alert dispatcher disabled")
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	// The reader stays open until the dispatcher has committed its last batch.
	if !waitDone(shutdownCtx, dispatcherDone) {
		logger.Warn("alert dispatcher did not stop before shutdown timeout")
	}
	if reader != nil {
		if err := reader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}
	observability.ShutdownTracing(shutdownCtx, shutdownTracing, logger)

	logger.Info("shutdown complete")
	return nil
}

// waitDone blocks until done is closed or ctx expires, reporting which came first.
func waitDone(ctx context.Context, done <-chan struct{}) bool {
	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}

// readinessGroup is ready when every member is, within readinessTimeout.
type readinessGroup []sharedobs.ReadinessChecker

const readinessTimeout = 2 * time.Second

func (g readinessGroup) CheckReadiness(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	var errs []error
	for _, c := range g {
		if err := c.CheckReadiness(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("not ready: %w", errors.Join(errs...))
	}
	return nil
}
