// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jsamuelsen/proverb-service/internal/domain"
	"github.com/jsamuelsen/proverb-service/internal/platform/logging"
	"github.com/jsamuelsen/proverb-service/internal/ports"
)

// The full, unprojected listing is cached under listKeyPrefix plus the
// current generation. Every successful write bumps the generation, so a
// listing read before the write can only ever be stored under a key that is
// no longer looked up.
const (
	listGenerationKey = "list:generation"
	listKeyPrefix     = "list:"
)

// DefaultCacheTTL applies when a cache is configured without a TTL.
const DefaultCacheTTL = 30 * time.Second

// ProverbService orchestrates proverb use cases over a repository and an
// optional list cache.
type ProverbService struct {
	repo             ports.ProverbRepository
	cache            ports.Cache
	logger           *slog.Logger
	now              func() time.Time
	strictSituations bool
	cacheTTL         time.Duration
}

// ProverbServiceConfig contains the dependencies of the proverb service.
type ProverbServiceConfig struct {
	Repository ports.ProverbRepository

	// Cache is optional. When set, the full listing is cached and every
	// successful write invalidates it. Cache failures never fail a request.
	Cache    ports.Cache
	CacheTTL time.Duration

	Logger *slog.Logger

	// Clock defaults to time.Now.
	Clock func() time.Time

	// StrictSituations rejects relevantSituations tags outside the vocabulary.
	StrictSituations bool
}

// NewProverbService creates a proverb service. It panics without a repository.
func NewProverbService(cfg ProverbServiceConfig) *ProverbService {
	if cfg.Repository == nil {
		panic("app: proverb repository is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &ProverbService{
		repo:             cfg.Repository,
		cache:            cfg.Cache,
		logger:           logger,
		now:              clock,
		strictSituations: cfg.StrictSituations,
		cacheTTL:         ttl,
	}
}

// List returns one page of proverbs together with the collection size.
// The page and the count are fetched concurrently.
func (s *ProverbService) List(ctx context.Context, opts domain.ListOptions) (*domain.ProverbPage, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var cacheKey string

	if opts.IsZero() {
		cacheKey = s.listKey(ctx)

		if items, ok := s.cachedList(ctx, cacheKey); ok {
			return &domain.ProverbPage{Items: items, Total: int64(len(items))}, nil
		}
	}

	query := opts
	if query.Limit > 0 {
		// One extra record tells us whether another page follows.
		query.Limit++
	}

	items, total, err := Parallel2(ctx,
		func(ctx context.Context) ([]domain.Proverb, error) { return s.repo.List(ctx, query) },
		func(ctx context.Context) (int64, error) { return s.repo.Count(ctx) },
	)
	if err != nil {
		return nil, fmt.Errorf("listing proverbs: %w", err)
	}

	page := &domain.ProverbPage{Items: items, Total: total}

	if opts.Limit > 0 && len(items) > opts.Limit {
		page.Items = items[:opts.Limit]
		last := page.Items[opts.Limit-1]
		page.Next = &domain.ListCursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}

	if cacheKey != "" {
		s.storeList(ctx, cacheKey, page.Items)
	}

	return page, nil
}

// Get returns a single proverb.
func (s *ProverbService) Get(ctx context.Context, id string) (*domain.Proverb, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting proverb: %w", err)
	}

	return p, nil
}

// Create validates details and stores a new proverb stamped with the current time.
func (s *ProverbService) Create(ctx context.Context, details domain.ProverbDetails) (*domain.Proverb, error) {
	details.Normalize()

	if err := details.Validate(s.strictSituations); err != nil {
		return nil, err
	}

	p, err := s.repo.Insert(ctx, details, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("creating proverb: %w", err)
	}

	s.logger.InfoContext(ctx, "proverb created",
		slog.String(logging.KeyProverbID, p.ID),
		slog.String("language", p.Language),
	)

	s.evictList(ctx)

	return p, nil
}

// Update replaces every client-supplied field of an existing proverb.
// It follows the same rules as Create.
func (s *ProverbService) Update(ctx context.Context, id string, details domain.ProverbDetails) (*domain.Proverb, error) {
	details.Normalize()

	if err := details.Validate(s.strictSituations); err != nil {
		return nil, err
	}

	p, err := s.repo.Replace(ctx, id, details)
	if err != nil {
		return nil, fmt.Errorf("updating proverb: %w", err)
	}

	s.logger.InfoContext(ctx, "proverb updated", slog.String(logging.KeyProverbID, id))

	s.evictList(ctx)

	return p, nil
}

// Delete removes a proverb.
func (s *ProverbService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting proverb: %w", err)
	}

	s.logger.InfoContext(ctx, "proverb deleted", slog.String(logging.KeyProverbID, id))

	s.evictList(ctx)

	return nil
}

// Vocabulary is the controlled vocabulary a proverb form offers.
type Vocabulary struct {
	Moods      []domain.Mood
	Situations []domain.SituationGroup
}

// Vocabulary returns the mood categories and situation groups.
func (s *ProverbService) Vocabulary() Vocabulary {
	return Vocabulary{
		Moods:      domain.Moods(),
		Situations: domain.SituationGroups(),
	}
}

// listKey returns the cache key for the current listing generation, read
// before the store is queried. It returns "" when there is no cache or the
// generation is unknown; the listing then bypasses the cache.
func (s *ProverbService) listKey(ctx context.Context) string {
	if s.cache == nil {
		return ""
	}

	gen, err := s.cache.Get(ctx, listGenerationKey)

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return listKeyPrefix + "0"
	case err != nil:
		s.logger.WarnContext(ctx, "list cache generation read failed", slog.Any("error", err))
		return ""
	}

	return listKeyPrefix + string(gen)
}

func (s *ProverbService) cachedList(ctx context.Context, key string) ([]domain.Proverb, bool) {
	if key == "" {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.WarnContext(ctx, "list cache read failed", slog.Any("error", err))
		}

		return nil, false
	}

	var items []domain.Proverb
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logger.WarnContext(ctx, "list cache entry unreadable", slog.Any("error", err))
		return nil, false
	}

	return items, true
}

func (s *ProverbService) storeList(ctx context.Context, key string, items []domain.Proverb) {
	raw, err := json.Marshal(items)
	if err != nil {
		s.logger.WarnContext(ctx, "list cache encode failed", slog.Any("error", err))
		return
	}

	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "list cache write failed", slog.Any("error", err))
	}
}

// evictList moves the listing to a new generation and drops the previous
// generation's entry.
func (s *ProverbService) evictList(ctx context.Context) {
	if s.cache == nil {
		return
	}

	gen, err := s.cache.Incr(ctx, listGenerationKey)
	if err != nil {
		s.logger.WarnContext(ctx, "list cache eviction failed", slog.Any("error", err))
		return
	}

	if err := s.cache.Delete(ctx, listKeyPrefix+strconv.FormatInt(gen-1, 10)); err != nil {
		s.logger.WarnContext(ctx, "stale list cache entry not removed", slog.Any("error", err))
	}
}

// ImportReport summarizes a bulk import. Failures are keyed by the record's
// position in the input.
type ImportReport struct {
	Created  []*domain.Proverb
	Failures map[int]error
}

// Import creates every record, running at most concurrency inserts at once.
// Invalid records are reported, not fatal; the rest are still stored.
func (s *ProverbService) Import(ctx context.Context, records []domain.ProverbDetails, concurrency int) ImportReport {
	if concurrency < 1 {
		concurrency = 1
	}

	fns := make([]func(context.Context) (*domain.Proverb, error), len(records))
	for i := range records {
		details := records[i]
		fns[i] = func(ctx context.Context) (*domain.Proverb, error) {
			return s.Create(ctx, details)
		}
	}

	report := ImportReport{Failures: map[int]error{}}

	for i, r := range ParallelPartialLimit(ctx, concurrency, fns...) {
		if r.Err != nil {
			report.Failures[i] = r.Err
			continue
		}

		report.Created = append(report.Created, r.Value)
	}

	s.logger.InfoContext(ctx, "proverb import finished",
		slog.Int("created", len(report.Created)),
		slog.Int("failed", len(report.Failures)),
	)

	return report
}
