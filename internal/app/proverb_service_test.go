package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/proverb-service/internal/domain"
	"github.com/jsamuelsen/proverb-service/internal/mocks"
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var fixedNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func validDetails() domain.ProverbDetails {
	return domain.ProverbDetails{
		OriginalText: "A stitch in time saves nine",
		Language:     "English",
		Country:      "UK",
		MoodCategory: domain.MoodMotivating,
	}
}

func proverb(id string, createdAt time.Time) domain.Proverb {
	return domain.Proverb{
		ID:             id,
		ProverbDetails: validDetails(),
		CreatedAt:      createdAt,
	}
}

func newService(repo *mocks.MockProverbRepository, cache *mocks.MockCache) *ProverbService {
	cfg := ProverbServiceConfig{
		Repository: repo,
		Logger:     discardLogger(),
		Clock:      func() time.Time { return fixedNow },
	}

	if cache != nil {
		cfg.Cache = cache
		cfg.CacheTTL = time.Minute
	}

	return NewProverbService(cfg)
}

func TestNewProverbService_PanicsWithoutRepository(t *testing.T) {
	assert.Panics(t, func() {
		NewProverbService(ProverbServiceConfig{Logger: slog.Default()})
	})
}

func TestNewProverbService_Defaults(t *testing.T) {
	svc := NewProverbService(ProverbServiceConfig{Repository: mocks.NewMockProverbRepository(t)})

	require.NotNil(t, svc)
	assert.NotNil(t, svc.logger)
	assert.NotNil(t, svc.now)
	assert.Equal(t, DefaultCacheTTL, svc.cacheTTL)
}

func TestProverbService_List(t *testing.T) {
	p1 := proverb("000000000000000000000001", fixedNow)
	p2 := proverb("000000000000000000000002", fixedNow.Add(time.Second))
	p3 := proverb("000000000000000000000003", fixedNow.Add(2*time.Second))

	tests := []struct {
		name      string
		opts      domain.ListOptions
		setupMock func(*mocks.MockProverbRepository)
		wantIDs   []string
		wantTotal int64
		wantNext  *domain.ListCursor
		errCheck  func(error) bool
	}{
		{
			name: "full listing",
			opts: domain.ListOptions{},
			setupMock: func(m *mocks.MockProverbRepository) {
				m.EXPECT().List(mock.Anything, domain.ListOptions{}).Return([]domain.Proverb{p1, p2}, nil)
				m.EXPECT().Count(mock.Anything).Return(int64(2), nil)
			},
			wantIDs:   []string{p1.ID, p2.ID},
			wantTotal: 2,
		},
		{
			name: "limit asks for one extra and sets next cursor",
			opts: domain.ListOptions{Limit: 2},
			setupMock: func(m *mocks.MockProverbRepository) {
				m.EXPECT().List(mock.Anything, domain.ListOptions{Limit: 3}).Return([]domain.Proverb{p1, p2, p3}, nil)
				m.EXPECT().Count(mock.Anything).Return(int64(3), nil)
			},
			wantIDs:   []string{p1.ID, p2.ID},
			wantTotal: 3,
			wantNext:  &domain.ListCursor{CreatedAt: p2.CreatedAt, ID: p2.ID},
		},
		{
			name: "last page has no cursor",
			opts: domain.ListOptions{Limit: 2, After: &domain.ListCursor{CreatedAt: p1.CreatedAt, ID: p1.ID}},
			setupMock: func(m *mocks.MockProverbRepository) {
				m.EXPECT().List(mock.Anything, mock.MatchedBy(func(o domain.ListOptions) bool {
					return o.Limit == 3 && o.After != nil && o.After.ID == p1.ID
				})).Return([]domain.Proverb{p2, p3}, nil)
				m.EXPECT().Count(mock.Anything).Return(int64(3), nil)
			},
			wantIDs:   []string{p2.ID, p3.ID},
			wantTotal: 3,
		},
		{
			name:      "invalid options never reach the store",
			opts:      domain.ListOptions{Limit: domain.MaxListLimit + 1},
			setupMock: func(*mocks.MockProverbRepository) {},
			errCheck:  domain.IsValidation,
		},
		{
			name: "store failure",
			opts: domain.ListOptions{},
			setupMock: func(m *mocks.MockProverbRepository) {
				m.EXPECT().List(mock.Anything, mock.Anything).
					Return(nil, domain.NewPersistenceError("list", errors.New("connection reset"))).Maybe()
				m.EXPECT().Count(mock.Anything).Return(int64(0), nil).Maybe()
			},
			errCheck: domain.IsPersistence,
		},
		{
			name: "count failure",
			opts: domain.ListOptions{},
			setupMock: func(m *mocks.MockProverbRepository) {
				m.EXPECT().List(mock.Anything, mock.Anything).Return([]domain.Proverb{}, nil).Maybe()
				m.EXPECT().Count(mock.Anything).
					Return(int64(0), domain.NewPersistenceError("count", context.DeadlineExceeded)).Maybe()
			},
			errCheck: domain.IsPersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockProverbRepository(t)
			tt.setupMock(repo)

			page, err := newService(repo, nil).List(context.Background(), tt.opts)

			if tt.errCheck != nil {
				require.Error(t, err)
				assert.True(t, tt.errCheck(err), "unexpected error: %v", err)
				assert.Nil(t, page)

				return
			}

			require.NoError(t, err)

			ids := make([]string, 0, len(page.Items))
			for _, p := range page.Items {
				ids = append(ids, p.ID)
			}

			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantTotal, page.Total)
			assert.Equal(t, tt.wantNext, page.Next)
		})
	}
}

func TestProverbService_List_Cache(t *testing.T) {
	p1 := proverb("000000000000000000000001", fixedNow)

	t.Run("hit skips the store", func(t *testing.T) {
		repo := mocks.NewMockProverbRepository(t)
		cache := mocks.NewMockCache(t)

		raw, err := json.Marshal([]domain.Proverb{p1})
		require.NoError(t, err)

		cache.EXPECT().Get(mock.Anything, listGenerationKey).Return([]byte("3"), nil)
		cache.EXPECT().Get(mock.Anything, "list:3").Return(raw, nil)

		page, err := newService(repo, cache).List(context.Background(), domain.ListOptions{})
		require.NoError(t, err)

		require.Len(t, page.Items, 1)
		assert.Equal(t, p1, page.Items[0])
		assert.Equal(t, int64(1), page.Total)
	})

	t.Run("miss loads and stores", func(t *testing.T) {
		repo := mocks.NewMockProverbRepository(t)
		cache := mocks.NewMockCache(t)

		cache.EXPECT().Get(mock.Anything, listGenerationKey).Return(nil, domain.ErrNotFound)
		cache.EXPECT().Get(mock.Anything, "list:0").Return(nil, domain.ErrNotFound)
		repo.EXPECT().List(mock.Anything, domain.ListOptions{}).Return([]domain.Proverb{p1}, nil)
		repo.EXPECT().Count(mock.Anything).Return(int64(1), nil)
		cache.EXPECT().Set(mock.Anything, "list:0", mock.Anything, time.Minute).Return(nil)

		page, err := newService(repo, cache).List(context.Background(), domain.ListOptions{})
		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
	})

	t.Run("unknown generation bypasses the cache", func(t *testing.T) {
		repo := mocks.NewMockProverbRepository(t)
		cache := mocks.NewMockCache(t)

		outage := domain.NewPersistenceError("cache get", errors.New("connection refused"))
		cache.EXPECT().Get(mock.Anything, listGenerationKey).Return(nil, outage)
		repo.EXPECT().List(mock.Anything, domain.ListOptions{}).Return([]domain.Proverb{p1}, nil)
		repo.EXPECT().Count(mock.Anything).Return(int64(1), nil)

		page, err := newService(repo, cache).List(context.Background(), domain.ListOptions{})
		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
	})

	t.Run("cache outage falls through to the store", func(t *testing.T) {
		repo := mocks.NewMockProverbRepository(t)
		cache := mocks.NewMockCache(t)

		outage := domain.NewPersistenceError("cache get", errors.New("connection refused"))
		cache.EXPECT().Get(mock.Anything, listGenerationKey).Return([]byte("1"), nil)
		cache.EXPECT().Get(mock.Anything, "list:1").Return(nil, outage)
		repo.EXPECT().List(mock.Anything, domain.ListOptions{}).Return([]domain.Proverb{p1}, nil)
		repo.EXPECT().Count(mock.Anything).Return(int64(1), nil)
		cache.EXPECT().Set(mock.Anything, "list:1", mock.Anything, time.Minute).Return(outage)

		page, err := newService(repo, cache).List(context.Background(), domain.ListOptions{})
		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
	})

	t.Run("paged query bypasses the cache", func(t *testing.T) {
		repo := mocks.NewMockProverbRepository(t)
		cache := mocks.NewMockCache(t)

		repo.EXPECT().List(mock.Anything, domain.ListOptions{Limit: 6}).Return([]domain.Proverb{p1}, nil)
		repo.EXPECT().Count(mock.Anything).Return(int64(1), nil)

		_, err := newService(repo, cache).List(context.Background(), domain.ListOptions{Limit: 5})
		require.NoError(t, err)
	})
}

// memoryCache is a ports.Cache backed by a map.
type memoryCache struct {
	mu     sync.Mutex
	values map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.values[key]
	if !ok {
		return nil, domain.ErrNotFound
	}

	return v, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.values[key] = value

	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.values, key)

	return nil
}

func (c *memoryCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64

	if v, ok := c.values[key]; ok {
		parsed, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return 0, err
		}

		n = parsed
	}

	n++
	c.values[key] = []byte(strconv.FormatInt(n, 10))

	return n, nil
}

func TestProverbService_List_WriteDuringCacheMiss(t *testing.T) {
	p1 := proverb("000000000000000000000001", fixedNow)
	ctx := context.Background()

	repo := mocks.NewMockProverbRepository(t)
	svc := NewProverbService(ProverbServiceConfig{
		Repository: repo,
		Cache:      newMemoryCache(),
		CacheTTL:   time.Minute,
		Logger:     discardLogger(),
		Clock:      func() time.Time { return fixedNow },
	})

	listing := make(chan struct{})
	release := make(chan struct{})

	// The first listing reads the store before the insert and returns
	// only after the insert has completed.
	repo.EXPECT().List(mock.Anything, domain.ListOptions{}).
		RunAndReturn(func(context.Context, domain.ListOptions) ([]domain.Proverb, error) {
			close(listing)
			<-release

			return []domain.Proverb{}, nil
		}).Once()
	repo.EXPECT().Count(mock.Anything).Return(int64(0), nil).Once()
	repo.EXPECT().Insert(mock.Anything, mock.Anything, fixedNow).Return(&p1, nil)
	repo.EXPECT().List(mock.Anything, domain.ListOptions{}).Return([]domain.Proverb{p1}, nil).Once()
	repo.EXPECT().Count(mock.Anything).Return(int64(1), nil).Once()

	done := make(chan error, 1)

	go func() {
		_, err := svc.List(ctx, domain.ListOptions{})
		done <- err
	}()

	<-listing

	_, err := svc.Create(ctx, validDetails())
	require.NoError(t, err)

	close(release)
	require.NoError(t, <-done)

	page, err := svc.List(ctx, domain.ListOptions{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1, "listing after a create must include it")
	assert.Equal(t, p1.ID, page.Items[0].ID)

	// The fresh listing is now cached; the store is not asked again.
	page, err = svc.List(ctx, domain.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}

func TestProverbService_Get(t *testing.T) {
	p1 := proverb("000000000000000000000001", fixedNow)

	tests := []struct {
		name      string
		id        string
		setupMock func(*mocks.MockProverbRepository)
		want      *domain.Proverb
		errCheck  func(error) bool
	}{
		{
			name: "found",
			id:   p1.ID,
			setupMock: func(m *mocks.MockProverbRepository) {
				m.EXPECT().Get(mock.Anything, p1.ID).Return(&p1, nil)
			},
			want: &p1,
		},
		{
			name: "not found",
			id:   "missing",
			setupMock: func(m *mocks.MockProverbRepository) {
				m.EXPECT().Get(mock.Anything, "missing").Return(nil, domain.NewNotFoundError(domain.ProverbEntity, "missing"))
			},
			errCheck: domain.IsNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockProverbRepository(t)
			tt.setupMock(repo)

			got, err := newService(repo, nil).Get(context.Background(), tt.id)

			if tt.errCheck != nil {
				require.Error(t, err)
				assert.True(t, tt.errCheck(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProverbService_Create(t *testing.T) {
	t.Run("stamps createdAt and normalizes situations", func(t *testing.T) {
		repo := mocks.NewMockProverbRepository(t)

		expected := validDetails()
		expected.RelevantSituations = []string{}

		created := domain.Proverb{ID: "000000000000000000000009", ProverbDetails: expected, CreatedAt: fixedNow}
		repo.EXPECT().Insert(mock.Anything, expected, fixedNow).Return(&created, nil)

		got, err := newService(repo, nil).Create(context.Background(), validDetails())
		require.NoError(t, err)
		assert.Equal(t, &created, got)
	})

	t.Run("validation failure skips the write", func(t *testing.T) {
		repo := mocks.NewMockProverbRepository(t)

		details := validDetails()
		details.Country = "   "
		details.MoodCategory = "angry"

		_, err := newService(repo, nil).Create(context.Background(), details)
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))

		fields := domain.ValidationDetails(err)
		assert.Contains(t, fields, "country")
		assert.Contains(t, fields, "moodCategory")
	})

	t.Run("unknown situation accepted unless strict", func(t *testing.T) {
		details := validDetails()
		details.RelevantSituations = []string{"not_a_tag"}

		repo := mocks.NewMockProverbRepository(t)
		repo.EXPECT().Insert(mock.Anything, details, fixedNow).
			Return(&domain.Proverb{ID: "1", ProverbDetails: details, CreatedAt: fixedNow}, nil)

		_, err := newService(repo, nil).Create(context.Background(), details)
		require.NoError(t, err)

		strict := NewProverbService(ProverbServiceConfig{
			Repository:       mocks.NewMockProverbRepository(t),
			Logger:           discardLogger(),
			StrictSituations: true,
		})

		_, err = strict.Create(context.Background(), details)
		require.Error(t, err)
		assert.Contains(t, domain.ValidationDetails(err), "relevantSituations")
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		repo := mocks.NewMockProverbRepository(t)
		repo.EXPECT().Insert(mock.Anything, mock.Anything, mock.Anything).
			Return(nil, domain.NewPersistenceError("insert", errors.New("not primary")))

		_, err := newService(repo, nil).Create(context.Background(), validDetails())
		require.Error(t, err)
		assert.True(t, domain.IsPersistence(err))
		assert.Contains(t, err.Error(), "creating proverb")
	})

	t.Run("bumps the listing generation", func(t *testing.T) {
		repo := mocks.NewMockProverbRepository(t)
		cache := mocks.NewMockCache(t)

		repo.EXPECT().Insert(mock.Anything, mock.Anything, fixedNow).
			Return(&domain.Proverb{ID: "1", CreatedAt: fixedNow}, nil)
		cache.EXPECT().Incr(mock.Anything, listGenerationKey).Return(int64(5), nil)
		cache.EXPECT().Delete(mock.Anything, "list:4").Return(errors.New("redis down"))

		_, err := newService(repo, cache).Create(context.Background(), validDetails())
		require.NoError(t, err, "cleanup failures are not surfaced")
	})

	t.Run("eviction failure is not surfaced", func(t *testing.T) {
		repo := mocks.NewMockProverbRepository(t)
		cache := mocks.NewMockCache(t)

		repo.EXPECT().Insert(mock.Anything, mock.Anything, fixedNow).
			Return(&domain.Proverb{ID: "1", CreatedAt: fixedNow}, nil)
		cache.EXPECT().Incr(mock.Anything, listGenerationKey).Return(int64(0), errors.New("redis down"))

		_, err := newService(repo, cache).Create(context.Background(), validDetails())
		require.NoError(t, err)
	})
}

func TestProverbService_Update(t *testing.T) {
	id := "000000000000000000000001"

	t.Run("replaces fields", func(t *testing.T) {
		repo := mocks.NewMockProverbRepository(t)
		cache := mocks.NewMockCache(t)

		details := validDetails()
		details.EnglishTranslation = "Fix small problems early"

		updated := domain.Proverb{ID: id, ProverbDetails: details, CreatedAt: fixedNow.Add(-time.Hour)}
		updated.RelevantSituations = []string{}

		repo.EXPECT().Replace(mock.Anything, id, mock.MatchedBy(func(d domain.ProverbDetails) bool {
			return d.EnglishTranslation == "Fix small problems early" && d.RelevantSituations != nil
		})).Return(&updated, nil)
		cache.EXPECT().Incr(mock.Anything, listGenerationKey).Return(int64(4), nil)
		cache.EXPECT().Delete(mock.Anything, "list:3").Return(nil)

		got, err := newService(repo, cache).Update(context.Background(), id, details)
		require.NoError(t, err)
		assert.Equal(t, &updated, got)
	})

	t.Run("full replacement requires every required field", func(t *testing.T) {
		repo := mocks.NewMockProverbRepository(t)

		_, err := newService(repo, nil).Update(context.Background(), id, domain.ProverbDetails{OriginalText: "only this"})
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("no match", func(t *testing.T) {
		repo := mocks.NewMockProverbRepository(t)
		repo.EXPECT().Replace(mock.Anything, id, mock.Anything).
			Return(nil, domain.NewNotFoundError(domain.ProverbEntity, id))

		_, err := newService(repo, nil).Update(context.Background(), id, validDetails())
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestProverbService_Delete(t *testing.T) {
	id := "000000000000000000000001"

	t.Run("removes and evicts", func(t *testing.T) {
		repo := mocks.NewMockProverbRepository(t)
		cache := mocks.NewMockCache(t)

		repo.EXPECT().Delete(mock.Anything, id).Return(nil)
		cache.EXPECT().Incr(mock.Anything, listGenerationKey).Return(int64(1), nil)
		cache.EXPECT().Delete(mock.Anything, "list:0").Return(nil)

		require.NoError(t, newService(repo, cache).Delete(context.Background(), id))
	})

	t.Run("no match leaves cache alone", func(t *testing.T) {
		repo := mocks.NewMockProverbRepository(t)
		cache := mocks.NewMockCache(t)

		repo.EXPECT().Delete(mock.Anything, id).Return(domain.NewNotFoundError(domain.ProverbEntity, id))

		err := newService(repo, cache).Delete(context.Background(), id)
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestProverbService_Vocabulary(t *testing.T) {
	v := newService(mocks.NewMockProverbRepository(t), nil).Vocabulary()

	assert.Len(t, v.Moods, 5)
	assert.Len(t, v.Situations, 8)
}

func TestProverbService_Import(t *testing.T) {
	repo := mocks.NewMockProverbRepository(t)

	good := validDetails()
	bad := validDetails()
	bad.Language = ""

	repo.EXPECT().Insert(mock.Anything, mock.Anything, fixedNow).
		RunAndReturn(func(_ context.Context, d domain.ProverbDetails, at time.Time) (*domain.Proverb, error) {
			return &domain.Proverb{ID: "id", ProverbDetails: d, CreatedAt: at}, nil
		}).Times(2)

	report := newService(repo, nil).Import(context.Background(), []domain.ProverbDetails{good, bad, good}, 2)

	assert.Len(t, report.Created, 2)
	require.Len(t, report.Failures, 1)
	assert.True(t, domain.IsValidation(report.Failures[1]))
}
