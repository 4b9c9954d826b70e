// Package bootstrap assembles the pieces both binaries share: configuration,
// logging and the proverb stores.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/proverb-service/internal/adapters/mongostore"
	"github.com/jsamuelsen/proverb-service/internal/adapters/rediscache"
	"github.com/jsamuelsen/proverb-service/internal/app"
	"github.com/jsamuelsen/proverb-service/internal/platform/config"
	"github.com/jsamuelsen/proverb-service/internal/platform/logging"
	"github.com/jsamuelsen/proverb-service/internal/platform/metrics"
	"github.com/jsamuelsen/proverb-service/internal/ports"
)

// IndexTimeout bounds the startup index check.
const IndexTimeout = 10 * time.Second

// LoadConfig reads an optional .env file, then loads and validates the
// configuration for the APP_ENVIRONMENT profile (default "local").
func LoadConfig() (*config.Config, error) {
	// A missing .env is fine; values may come from the real environment.
	_ = godotenv.Load()

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// NewLogger builds the process logger from cfg and makes it the default.
func NewLogger(cfg *config.Config) *slog.Logger {
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	return logger
}

// Stores holds the persistence adapters. Cache is nil when the list cache is
// disabled.
type Stores struct {
	Connector  *mongostore.Connector
	Repository *mongostore.Repository
	Cache      *rediscache.Cache

	closers []func(context.Context) error
}

// OpenStores creates the Mongo connector and repository and, when enabled,
// the Redis list cache. Nothing is dialled yet except the index check, whose
// failure is logged and tolerated.
func OpenStores(ctx context.Context, cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*Stores, error) {
	mongoMetrics, err := metrics.NewStoreMetrics(reg, "mongo")
	if err != nil {
		return nil, fmt.Errorf("creating mongo metrics: %w", err)
	}

	connector := mongostore.NewConnector(mongostore.ConfigFrom(&cfg.Mongo), logger)

	s := &Stores{
		Connector:  connector,
		Repository: mongostore.NewRepository(connector, mongoMetrics),
		closers:    []func(context.Context) error{connector.Close},
	}

	indexCtx, cancel := context.WithTimeout(ctx, IndexTimeout)
	defer cancel()

	if err := s.Repository.EnsureIndexes(indexCtx); err != nil {
		logger.Warn("ensuring proverb indexes", slog.Any("error", err))
	}

	if !cfg.Cache.Enabled {
		return s, nil
	}

	cacheMetrics, err := metrics.NewStoreMetrics(reg, "redis")
	if err != nil {
		return nil, fmt.Errorf("creating cache metrics: %w", err)
	}

	client := rediscache.NewClient(rediscache.Options{
		Addr:     cfg.Cache.Addr,
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
	})

	s.Cache = rediscache.New(client, cacheMetrics)
	s.closers = append(s.closers, func(context.Context) error { return client.Close() })

	return s, nil
}

// RegisterHealth adds the store checkers to registry. The cache is optional,
// so its failure only degrades readiness.
func (s *Stores) RegisterHealth(registry ports.HealthRegistry) error {
	if err := registry.Register(s.Connector); err != nil {
		return fmt.Errorf("registering mongo health check: %w", err)
	}

	if s.Cache != nil {
		if err := registry.Register(s.Cache); err != nil {
			return fmt.Errorf("registering cache health check: %w", err)
		}
	}

	return nil
}

// ServiceConfig returns the proverb service configuration over these stores.
func (s *Stores) ServiceConfig(cfg *config.Config, logger *slog.Logger) app.ProverbServiceConfig {
	svc := app.ProverbServiceConfig{
		Repository:       s.Repository,
		Logger:           logger,
		StrictSituations: cfg.Proverbs.StrictSituations,
	}

	if s.Cache != nil {
		svc.Cache = s.Cache
		svc.CacheTTL = cfg.Cache.TTL
	}

	return svc
}

// Close releases every store client.
func (s *Stores) Close(ctx context.Context) error {
	var errs []error

	for _, closeFn := range s.closers {
		if err := closeFn(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
