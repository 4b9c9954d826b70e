// Package rediscache implements the listing cache on Redis.
package rediscache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jsamuelsen/proverb-service/internal/domain"
	"github.com/jsamuelsen/proverb-service/internal/platform/metrics"
	"github.com/jsamuelsen/proverb-service/internal/ports"
)

// KeyPrefix namespaces every key this service writes.
const KeyPrefix = "proverbs:"

// Commands is the subset of the go-redis client the cache uses.
// *redis.Client satisfies it.
type Commands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// Cache stores opaque values under prefixed keys.
type Cache struct {
	client  Commands
	metrics *metrics.StoreMetrics
}

var (
	_ ports.Cache           = (*Cache)(nil)
	_ ports.OptionalChecker = (*Cache)(nil)
)

// Options configures the Redis client built by NewClient.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewClient builds a go-redis client. It does not dial until first use.
func NewClient(opts Options) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
}

// New wraps client. m may be nil.
func New(client Commands, m *metrics.StoreMetrics) *Cache {
	return &Cache{client: client, metrics: m}
}

// Get returns the value at key, or domain.ErrNotFound on a miss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()

	val, err := c.client.Get(ctx, KeyPrefix+key).Bytes()

	switch {
	case errors.Is(err, redis.Nil):
		c.metrics.Observe("get", metrics.OutcomeNotFound, start)
		return nil, domain.ErrNotFound
	case err != nil:
		c.metrics.Observe("get", metrics.OutcomeError, start)
		return nil, domain.NewPersistenceError("cache get", err)
	}

	c.metrics.Observe("get", metrics.OutcomeOK, start)

	return val, nil
}

// Set stores value at key for ttl.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	start := time.Now()

	if err := c.client.Set(ctx, KeyPrefix+key, value, ttl).Err(); err != nil {
		c.metrics.Observe("set", metrics.OutcomeError, start)
		return domain.NewPersistenceError("cache set", err)
	}

	c.metrics.Observe("set", metrics.OutcomeOK, start)

	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	start := time.Now()

	if err := c.client.Del(ctx, KeyPrefix+key).Err(); err != nil {
		c.metrics.Observe("delete", metrics.OutcomeError, start)
		return domain.NewPersistenceError("cache delete", err)
	}

	c.metrics.Observe("delete", metrics.OutcomeOK, start)

	return nil
}

// Incr increments the counter at key with INCR and returns its new value.
func (c *Cache) Incr(ctx context.Context, key string) (int64, error) {
	start := time.Now()

	n, err := c.client.Incr(ctx, KeyPrefix+key).Result()
	if err != nil {
		c.metrics.Observe("incr", metrics.OutcomeError, start)
		return 0, domain.NewPersistenceError("cache incr", err)
	}

	c.metrics.Observe("incr", metrics.OutcomeOK, start)

	return n, nil
}

// Name implements ports.HealthChecker.
func (c *Cache) Name() string {
	return "redis"
}

// Check pings the server.
func (c *Cache) Check(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return domain.NewPersistenceError("cache ping", err)
	}

	return nil
}

// Optional marks the cache as non-critical: the service keeps serving
// from MongoDB when Redis is down.
func (c *Cache) Optional() bool {
	return true
}
