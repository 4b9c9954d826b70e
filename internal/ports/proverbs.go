// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never driver or wire types
//   - Error returns use domain error types (ErrNotFound, ErrPersistence)
//   - Keep interfaces small and focused
package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen/proverb-service/internal/domain"
)

// ProverbRepository persists proverb records.
// Ids that the store cannot parse match nothing and yield domain.ErrNotFound.
// Every other store failure is reported as a domain.PersistenceError.
type ProverbRepository interface {
	// List returns proverbs ordered by creation time then id.
	List(ctx context.Context, opts domain.ListOptions) ([]domain.Proverb, error)

	// Count returns the number of stored proverbs.
	Count(ctx context.Context) (int64, error)

	// Get returns the proverb with the given id.
	Get(ctx context.Context, id string) (*domain.Proverb, error)

	// Insert stores a new proverb and returns it with its assigned id.
	Insert(ctx context.Context, details domain.ProverbDetails, createdAt time.Time) (*domain.Proverb, error)

	// Replace overwrites every client-supplied field of an existing proverb
	// and returns the updated record. ID and CreatedAt are preserved.
	Replace(ctx context.Context, id string, details domain.ProverbDetails) (*domain.Proverb, error)

	// Delete removes the proverb with the given id.
	Delete(ctx context.Context, id string) error
}

// Cache defines the contract for caching operations.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns domain.ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache.
	// Does not return an error if the key does not exist.
	Delete(ctx context.Context, key string) error

	// Incr atomically increments the integer stored at key and returns the
	// new value. A missing key counts as 0 and never expires.
	Incr(ctx context.Context, key string) (int64, error)
}
