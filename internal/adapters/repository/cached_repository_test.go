package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-audit/internal/observability"
)

// countingRepo wraps the in-memory store and counts loads.
type countingRepo struct {
	*InMemoryRepository
	loads   int
	saveErr error
}

func (c *countingRepo) Load(ctx context.Context) ([]*domain.Habit, error) {
	c.loads++
	return c.InMemoryRepository.Load(ctx)
}

func (c *countingRepo) Save(ctx context.Context, habits []*domain.Habit) error {
	if c.saveErr != nil {
		return c.saveErr
	}
	return c.InMemoryRepository.Save(ctx, habits)
}

func setupCached(t *testing.T) (*CachedRepository, *countingRepo, *miniredis.Miniredis, *observability.Metrics) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	inner := &countingRepo{InMemoryRepository: NewInMemoryRepository(quiet)}
	metrics := observability.NewMetrics(nil)
	return NewCachedRepository(inner, rdb, 30*time.Minute, quiet, metrics), inner, mr, metrics
}

func TestCachedRepository(t *testing.T) {
	ctx := context.Background()
	key := "habits:" + domain.StorageKey

	t.Run("Second load is served from redis", func(t *testing.T) {
		repo, inner, mr, metrics := setupCached(t)
		require.NoError(t, inner.InMemoryRepository.Save(ctx, sampleHabits()))

		first, err := repo.Load(ctx)
		require.NoError(t, err)
		second, err := repo.Load(ctx)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, inner.loads)
		assert.True(t, mr.Exists(key))
		assert.Equal(t, 30*time.Minute, mr.TTL(key))
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheHitsTotal))
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheMissesTotal))
	})

	t.Run("Save invalidates the cached copy", func(t *testing.T) {
		repo, inner, mr, _ := setupCached(t)
		_, err := repo.Load(ctx)
		require.NoError(t, err)
		require.True(t, mr.Exists(key))

		require.NoError(t, repo.Save(ctx, sampleHabits()))

		assert.False(t, mr.Exists(key))
		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, 2, inner.loads)
	})

	t.Run("Failed save keeps the cache", func(t *testing.T) {
		repo, inner, mr, _ := setupCached(t)
		_, err := repo.Load(ctx)
		require.NoError(t, err)
		inner.saveErr = errors.New("disk full")

		err = repo.Save(ctx, sampleHabits())

		assert.ErrorIs(t, err, inner.saveErr)
		assert.True(t, mr.Exists(key))
	})

	t.Run("Corrupted cache entry falls through", func(t *testing.T) {
		repo, inner, mr, _ := setupCached(t)
		require.NoError(t, inner.InMemoryRepository.Save(ctx, sampleHabits()))
		require.NoError(t, mr.Set(key, "{garbage"))

		got, err := repo.Load(ctx)

		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, 1, inner.loads)
		cached, err := mr.Get(key)
		require.NoError(t, err)
		assert.NotEqual(t, "{garbage", cached)
	})

	t.Run("Cached null entry is a miss", func(t *testing.T) {
		repo, inner, mr, _ := setupCached(t)
		require.NoError(t, inner.InMemoryRepository.Save(ctx, sampleHabits()))
		require.NoError(t, mr.Set(key, "[null]"))

		got, err := repo.Load(ctx)

		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, 1, inner.loads)
	})

	t.Run("Redis down still serves from the store", func(t *testing.T) {
		repo, inner, mr, _ := setupCached(t)
		require.NoError(t, inner.InMemoryRepository.Save(ctx, sampleHabits()))
		mr.Close()

		got, err := repo.Load(ctx)

		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}
