// Package cache is a small JSON cache over Redis. A Store built without a
// client is a valid no-op cache so callers never branch on availability.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/catalog/pkg/metrics"
)

// Store reads and writes JSON values under a key prefix.
type Store struct {
	rdb    redis.Cmdable
	prefix string
}

// Connect opens a Redis client and pings it.
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}
	return rdb, nil
}

// New wraps rdb. rdb may be nil.
func New(rdb redis.Cmdable, prefix string) *Store {
	return &Store{rdb: rdb, prefix: prefix}
}

// Enabled reports whether the store is backed by Redis.
func (s *Store) Enabled() bool { return s != nil && s.rdb != nil }

func (s *Store) key(k string) string { return s.prefix + k }

// Get unmarshals the value under key into dest and reports a hit.
func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	if !s.Enabled() {
		return false
	}

	val, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if err != nil || json.Unmarshal(val, dest) != nil {
		metrics.CacheMisses.WithLabelValues(s.prefix).Inc()
		return false
	}
	metrics.CacheHits.WithLabelValues(s.prefix).Inc()
	return true
}

// Set stores value under key for ttl.
func (s *Store) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal %s: %w", key, err)
	}
	return s.rdb.Set(ctx, s.key(key), data, ttl).Err()
}

// Incr bumps the counter under key and returns the new value.
func (s *Store) Incr(ctx context.Context, key string) (int64, error) {
	if !s.Enabled() {
		return 0, nil
	}
	return s.rdb.Incr(ctx, s.key(key)).Result()
}

// Counter returns the counter under key, or 0 when unset.
func (s *Store) Counter(ctx context.Context, key string) (int64, error) {
	if !s.Enabled() {
		return 0, nil
	}
	n, err := s.rdb.Get(ctx, s.key(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}
