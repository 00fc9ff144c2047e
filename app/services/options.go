package services

import (
	gohttp "net/http"
	"time"

	"github.com/lojas7/produtos/pkg/cache"
)

type options struct {
	client   *gohttp.Client
	cache    cache.Store
	cacheTTL time.Duration
}

// Option configures a CatalogService or an OrderService.
type Option func(*options)

// WithHTTPClient sends outbound requests with c instead of the shared
// pkg/http client.
func WithHTTPClient(c *gohttp.Client) Option {
	return func(o *options) { o.client = c }
}

// WithCache stores successful catalog listings in store for ttl. A zero ttl
// or nil store leaves caching off. OrderService ignores it.
func WithCache(store cache.Store, ttl time.Duration) Option {
	return func(o *options) {
		if store == nil || ttl <= 0 {
			return
		}
		o.cache = store
		o.cacheTTL = ttl
	}
}

func buildOptions(opts []Option) options {
	o := options{cache: cache.Nop{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
