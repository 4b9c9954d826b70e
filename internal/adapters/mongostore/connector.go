// Package mongostore persists proverbs in MongoDB.
package mongostore

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jsamuelsen/proverb-service/internal/domain"
	"github.com/jsamuelsen/proverb-service/internal/platform/config"
)

// Config describes how to reach the proverbs collection.
type Config struct {
	URI            string
	Database       string
	Collection     string
	MaxPoolSize    uint64
	ConnectTimeout time.Duration
	SocketTimeout  time.Duration
}

// ConfigFrom maps the loaded mongo settings onto a connector Config.
func ConfigFrom(cfg *config.MongoConfig) Config {
	return Config{
		URI:            cfg.URI,
		Database:       cfg.Database,
		Collection:     cfg.Collection,
		MaxPoolSize:    cfg.MaxPoolSize,
		ConnectTimeout: cfg.ConnectTimeout,
		SocketTimeout:  cfg.SocketTimeout,
	}
}

// ConnectFunc opens a client. mongo.Connect is the production implementation.
type ConnectFunc func(ctx context.Context, opts ...*options.ClientOptions) (*mongo.Client, error)

// Connector is the process-wide connection cache. The first Acquire opens a
// client and every later call reuses it; a broken client is never replaced.
//
// Acquire is check-then-set without a lock: concurrent cold starts may each
// open a client, and the last one stored wins. The extra clients are not
// closed. This race is accepted; only the first requests after startup can
// hit it.
type Connector struct {
	cfg     Config
	connect ConnectFunc
	logger  *slog.Logger
	client  atomic.Pointer[mongo.Client]
}

// NewConnector returns a Connector that dials lazily with mongo.Connect.
func NewConnector(cfg Config, logger *slog.Logger) *Connector {
	return NewConnectorWithFunc(cfg, logger, mongo.Connect)
}

// NewConnectorWithFunc returns a Connector that opens clients with connect.
func NewConnectorWithFunc(cfg Config, logger *slog.Logger, connect ConnectFunc) *Connector {
	return &Connector{
		cfg:     cfg,
		connect: connect,
		logger:  logger,
	}
}

// ClientOptions builds the bounded driver options for cfg.
func (c *Connector) ClientOptions() *options.ClientOptions {
	return options.Client().
		ApplyURI(c.cfg.URI).
		SetMaxPoolSize(c.cfg.MaxPoolSize).
		SetConnectTimeout(c.cfg.ConnectTimeout).
		SetSocketTimeout(c.cfg.SocketTimeout)
}

// Acquire returns the cached client, connecting on first use.
func (c *Connector) Acquire(ctx context.Context) (*mongo.Client, error) {
	if client := c.client.Load(); client != nil {
		return client, nil
	}

	client, err := c.connect(ctx, c.ClientOptions())
	if err != nil {
		return nil, domain.NewPersistenceError("connect", err)
	}

	c.client.Store(client)

	c.logger.InfoContext(ctx, "mongo client connected",
		slog.String("database", c.cfg.Database),
		slog.Uint64("max_pool_size", c.cfg.MaxPoolSize),
	)

	return client, nil
}

// Collection returns the proverbs collection on the cached client.
func (c *Connector) Collection(ctx context.Context) (*mongo.Collection, error) {
	client, err := c.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	return client.Database(c.cfg.Database).Collection(c.cfg.Collection), nil
}

// Name implements ports.HealthChecker.
func (c *Connector) Name() string {
	return "mongo"
}

// Check pings the primary through the cached client.
func (c *Connector) Check(ctx context.Context) error {
	client, err := c.Acquire(ctx)
	if err != nil {
		return err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return domain.NewPersistenceError("ping", err)
	}

	return nil
}

// Close disconnects the cached client, if any. Called once on shutdown.
func (c *Connector) Close(ctx context.Context) error {
	client := c.client.Swap(nil)
	if client == nil {
		return nil
	}

	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnecting mongo client: %w", err)
	}

	return nil
}
