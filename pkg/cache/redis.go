package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lojas7/produtos/config"
	"github.com/lojas7/produtos/pkg/metrics"
)

const driverRedis = "redis"

// RedisStore is a Store backed by go-redis. Keys are namespaced with prefix.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// Connect dials REDIS_ADDR and verifies the connection with a ping.
// The caller decides whether a failure is fatal or falls back to Nop.
func Connect(ctx context.Context) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}
	return NewRedisStore(rdb), nil
}

// NewRedisStore wraps an existing client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: "produtos:"}
}

// Get returns true on a cache hit, false on miss or any error.
func (s *RedisStore) Get(ctx context.Context, key string, dest interface{}) bool {
	val, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		metrics.CacheMisses.WithLabelValues(driverRedis).Inc()
		return false
	}

	if err := json.Unmarshal(val, dest); err != nil {
		metrics.CacheMisses.WithLabelValues(driverRedis).Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues(driverRedis).Inc()
	return true
}

func (s *RedisStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal %s: %w", key, err)
	}
	return s.rdb.Set(ctx, s.prefix+key, data, ttl).Err()
}

func (s *RedisStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.prefix + k
	}
	return s.rdb.Del(ctx, full...).Err()
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
