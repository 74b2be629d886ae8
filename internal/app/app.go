// Package app initializes and holds long-lived application services,
// acting as a dependency injection container.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/unifiwatch/stockwatch/internal/events"
	"github.com/unifiwatch/stockwatch/internal/history"
	"github.com/unifiwatch/stockwatch/internal/logging"
	"github.com/unifiwatch/stockwatch/internal/storage"
)

// App holds the shared services for one process: the logger and the
// provider implementations selected by configuration. It is
// initialized once at startup and handed to the command that runs the
// pipeline.
type App struct {
	logger      *zap.Logger
	screenshots storage.Provider
	history     history.Provider
	events      events.Provider
}

// GetLogger returns the shared zap logger instance.
func (a *App) GetLogger() *zap.Logger {
	return a.logger
}

// GetScreenshotStore exposes the configured screenshot storage provider.
func (a *App) GetScreenshotStore() storage.Provider {
	return a.screenshots
}

// GetHistory provides access to the check-history provider.
func (a *App) GetHistory() history.Provider {
	return a.history
}

// GetEvents returns the verdict event publisher.
func (a *App) GetEvents() events.Provider {
	return a.events
}

// NewApp creates and initializes the App from Viper configuration. It
// is the central point for service initialization and fails fast when
// a configured provider cannot be brought up.
func NewApp(ctx context.Context) (*App, error) {
	logger, err := logging.NewTee(
		viper.GetBool("logging.development"),
		viper.GetString("logging.file"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logging.Set(logger)
	logger.Info("Initializing application services...")

	// 1. Screenshot storage provider. Holds the "might be in stock"
	// evidence artifacts.
	var screenshots storage.Provider
	switch provider := viper.GetString("storage.provider"); provider {
	case "local":
		dir := viper.GetString("storage.local.screenshot_dir")
		logger.Info("Using local screenshot storage", zap.String("dir", dir))
		screenshots, err = storage.NewLocalProvider(dir)
	case "gcs":
		bucketName := viper.GetString("storage.gcs.bucket_name")
		if bucketName == "" {
			return nil, fmt.Errorf("storage provider is 'gcs' but storage.gcs.bucket_name is not set")
		}
		logger.Info("Using GCS screenshot storage", zap.String("bucket", bucketName))
		screenshots, err = storage.NewGCSProvider(ctx, bucketName, logger)
	case "noop":
		logger.Info("Using No-Op screenshot storage. Screenshots will be discarded.")
		screenshots = storage.NoOpProvider{}
	default:
		return nil, fmt.Errorf("unknown storage provider: %s", provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize screenshot storage: %w", err)
	}

	// 2. Check-history provider.
	var hist history.Provider
	switch provider := viper.GetString("history.provider"); provider {
	case "postgres":
		dsn := viper.GetString("history.postgres.dsn")
		if dsn == "" {
			return nil, fmt.Errorf("history provider is 'postgres' but history.postgres.dsn is not set")
		}
		logger.Info("Connecting to PostgreSQL check history...")
		hist, err = history.NewPostgresProvider(ctx, history.PostgresConfig{
			DSN:   dsn,
			Table: viper.GetString("history.postgres.table"),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize history store: %w", err)
		}
	case "noop":
		logger.Info("Using No-Op history provider. Check records will be discarded.")
		hist = history.NoOpProvider{}
	default:
		return nil, fmt.Errorf("unknown history provider: %s", provider)
	}

	// 3. Verdict event publisher.
	var pub events.Provider
	switch provider := viper.GetString("events.provider"); provider {
	case "pubsub":
		projectID := viper.GetString("events.gcp.project_id")
		topicID := viper.GetString("events.gcp.topic_id")
		if projectID == "" || topicID == "" {
			return nil, fmt.Errorf("events provider is 'pubsub' but project_id or topic_id is not set")
		}
		logger.Info("Connecting to GCP Pub/Sub", zap.String("topic", topicID))
		pub, err = events.NewPubSubProvider(ctx, projectID, topicID, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize event publisher: %w", err)
		}
	case "noop":
		logger.Info("Using No-Op event publisher. No events will be sent.")
		pub = events.NoOpProvider{}
	default:
		return nil, fmt.Errorf("unknown events provider: %s", provider)
	}

	logger.Info("Application services initialized successfully.")

	if addr := viper.GetString("metrics.listen_addr"); addr != "" {
		go serveMetrics(addr, logger)
	}

	return &App{
		logger:      logger,
		screenshots: screenshots,
		history:     hist,
		events:      pub,
	}, nil
}

// serveMetrics exposes /metrics and /healthz for installs that run the
// checker under a supervisor instead of cron.
func serveMetrics(addr string, logger *zap.Logger) {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	logger.Info("Starting metrics server", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Error("Metrics server failed", zap.Error(err))
	}
}

// Close gracefully shuts down all services in the App container.
// Called by a Cobra hook after the command finishes execution.
func (a *App) Close() {
	a.GetLogger().Info("Shutting down application services...")
	a.GetHistory().Close()
	if err := a.GetEvents().Close(); err != nil {
		a.GetLogger().Warn("Error closing event publisher", zap.Error(err))
	}

	// Flush buffered log entries before the process exits.
	if err := a.GetLogger().Sync(); err != nil {
		// Best effort; logging itself might be the thing failing.
		_ = err
	}
}
