package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-audit/internal/observability"
)

var _ domain.HabitRepository = (*CachedRepository)(nil)

// CachedRepository reads the collection through Redis and writes through to
// the wrapped store. Redis failures never fail a request.
type CachedRepository struct {
	next    domain.HabitRepository
	cache   *redis.Client
	ttl     time.Duration
	log     logrus.FieldLogger
	metrics *observability.Metrics

	// fill serializes cache fills with saves so a slow fill cannot put a
	// collection older than the last save back into Redis.
	fill sync.Mutex
}

func NewCachedRepository(next domain.HabitRepository, cache *redis.Client, ttl time.Duration, log logrus.FieldLogger, metrics *observability.Metrics) *CachedRepository {
	return &CachedRepository{
		next:    next,
		cache:   cache,
		ttl:     ttl,
		log:     log.WithField("component", "cache"),
		metrics: metrics,
	}
}

func (r *CachedRepository) cacheKey() string {
	return fmt.Sprintf("habits:%s", domain.StorageKey)
}

func (r *CachedRepository) invalidate(ctx context.Context) {
	if err := r.cache.Del(ctx, r.cacheKey()).Err(); err != nil {
		r.log.WithError(err).Warn("failed to invalidate habit cache")
	}
}

func (r *CachedRepository) Load(ctx context.Context) ([]*domain.Habit, error) {
	key := r.cacheKey()

	val, err := r.cache.Get(ctx, key).Bytes()
	if err == nil {
		if habits, ok := decodeCached(val); ok {
			r.hit()
			return habits, nil
		}
		r.log.Warn("corrupted cache entry, cleaning up key")
		r.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		r.log.WithError(err).Warn("redis read error")
	}
	r.miss()

	r.fill.Lock()
	defer r.fill.Unlock()

	habits, err := r.next.Load(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := encodeHabits(habits); err == nil {
		if setErr := r.cache.Set(ctx, key, data, r.ttl).Err(); setErr != nil {
			r.log.WithError(setErr).Warn("redis set error")
		}
	}

	return habits, nil
}

func (r *CachedRepository) Save(ctx context.Context, habits []*domain.Habit) error {
	r.fill.Lock()
	defer r.fill.Unlock()

	if err := r.next.Save(ctx, habits); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedRepository) hit() {
	if r.metrics != nil {
		r.metrics.CacheHitsTotal.Inc()
	}
}

func (r *CachedRepository) miss() {
	if r.metrics != nil {
		r.metrics.CacheMissesTotal.Inc()
	}
}

// decodeCached differs from decodeHabits: a bad cache entry is not data
// loss, it is a miss.
func decodeCached(data []byte) ([]*domain.Habit, bool) {
	var habits []*domain.Habit
	if err := json.Unmarshal(data, &habits); err != nil || habits == nil {
		return nil, false
	}
	for _, h := range habits {
		if h == nil {
			return nil, false
		}
	}
	return habits, true
}
