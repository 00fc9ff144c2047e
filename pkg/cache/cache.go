// Package cache stores JSON-encoded values with a TTL.
//
// The catalog client caches successful upstream listings here when
// CATALOG_CACHE_TTL is positive. A Nop store stands in when caching is off or
// Redis is unreachable, so callers never branch on availability.
package cache

import (
	"context"
	"time"
)

// Store is the cache contract used by the services.
type Store interface {
	// Get unmarshals the value under key into dest and reports a hit.
	Get(ctx context.Context, key string, dest interface{}) bool
	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// Del removes keys.
	Del(ctx context.Context, keys ...string) error
	// Close releases the underlying connection.
	Close() error
}

// Nop is a Store that never hits.
type Nop struct{}

func (Nop) Get(context.Context, string, interface{}) bool                   { return false }
func (Nop) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (Nop) Del(context.Context, ...string) error                          { return nil }
func (Nop) Close() error                                                  { return nil }
