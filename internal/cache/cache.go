// Package cache implements the keyed query cache the admin dashboard reads
// through. Entries are JSON envelopes in Redis, considered fresh for
// StaleTime after the backing fetch and evicted RetentionTime after the
// last write. Concurrent fetches for one key collapse into a single
// backend call.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"trading-admin-backend/internal/metrics"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/singleflight"
)

// Freshness parameters. These are a fixed contract with dashboard
// consumers, not tunables.
const (
	// StaleTime is how long a cached result is served without refetching.
	StaleTime = 5 * time.Minute
	// RetentionTime is how long an entry is retained before eviction.
	RetentionTime = 30 * time.Minute
)

// Store is the backing key-value store for cache envelopes.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type redisStore struct {
	client *redis.Client
}

// NewRedisStore wraps a Redis client as a cache Store.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// envelope wraps a cached payload with its fetch timestamp.
type envelope struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Payload   json.RawMessage `json:"payload"`
}

func (e *envelope) fresh(now time.Time) bool {
	return now.Sub(e.FetchedAt) < StaleTime
}

// QueryCache is the shared cache instance all cached queries go through.
type QueryCache struct {
	store   Store
	group   singleflight.Group
	metrics *metrics.Metrics
	now     func() time.Time
}

// New creates a QueryCache over the given store. Metrics may be nil.
func New(store Store, m *metrics.Metrics) *QueryCache {
	return &QueryCache{
		store:   store,
		metrics: m,
		now:     time.Now,
	}
}

// Invalidate drops a single cache entry. Read errors from the store are
// returned so callers can decide whether eviction failure matters.
func (qc *QueryCache) Invalidate(ctx context.Context, key string) error {
	return qc.store.Delete(ctx, key)
}

// Lookup returns the cached value for key regardless of age. It never
// triggers a fetch; disabled hooks use it to keep showing stale data.
func Lookup[T any](ctx context.Context, qc *QueryCache, key string) (T, bool) {
	var zero T
	data, found, err := qc.store.Get(ctx, key)
	if err != nil || !found {
		return zero, false
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return zero, false
	}

	var value T
	if err := json.Unmarshal(env.Payload, &value); err != nil {
		return zero, false
	}
	if qc.metrics != nil {
		qc.metrics.CacheStaleServed.WithLabelValues(keyResource(key)).Inc()
	}
	return value, true
}

// Fetch returns the cached value for key while fresh, otherwise runs fn
// and caches its result for RetentionTime. Concurrent callers with the
// same key share one in-flight fn invocation. A failed fn propagates its
// error unchanged; any stale entry stays in the store untouched.
func Fetch[T any](ctx context.Context, qc *QueryCache, key string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	resource := keyResource(key)

	data, found, err := qc.store.Get(ctx, key)
	if err == nil && found {
		var env envelope
		if err := json.Unmarshal(data, &env); err == nil && env.fresh(qc.now()) {
			var value T
			if err := json.Unmarshal(env.Payload, &value); err == nil {
				if qc.metrics != nil {
					qc.metrics.CacheHitsTotal.WithLabelValues(resource).Inc()
				}
				return value, nil
			}
		}
	}

	if qc.metrics != nil {
		qc.metrics.CacheMissesTotal.WithLabelValues(resource).Inc()
	}

	result, err, _ := qc.group.Do(key, func() (interface{}, error) {
		start := qc.now()
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		if qc.metrics != nil {
			qc.metrics.CacheFetchDuration.WithLabelValues(resource).Observe(qc.now().Sub(start).Seconds())
		}

		payload, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		env := envelope{FetchedAt: qc.now(), Payload: payload}
		data, err := json.Marshal(&env)
		if err != nil {
			return nil, err
		}
		// A cache write failure must not fail the query itself.
		_ = qc.store.Set(ctx, key, data, RetentionTime)
		return value, nil
	})
	if err != nil {
		return zero, err
	}
	return result.(T), nil
}
