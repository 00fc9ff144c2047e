package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/lojas7/produtos/app/models"
	produtoshttp "github.com/lojas7/produtos/pkg/http"
	"github.com/lojas7/produtos/pkg/logger"
	"github.com/lojas7/produtos/pkg/metrics"
)

const (
	kindListing = "listing"
	kindProduct = "product"

	outcomeOK     = "ok"
	outcomeEmpty  = "empty"
	outcomeFailed = "failed"
)

// ListingResult is the answer to a catalog listing call. Err is set when the
// catalog could not be reached or its answer could not be read; the listing
// is then empty.
type ListingResult struct {
	Listing models.ProductListing
	Err     error
}

// Failed reports a transport, status or decode failure.
func (r ListingResult) Failed() bool { return r.Err != nil }

// Empty reports a successful call that returned no products.
func (r ListingResult) Empty() bool { return r.Err == nil && len(r.Listing) == 0 }

// Products returns the listing, never nil.
func (r ListingResult) Products() models.ProductListing {
	if r.Listing == nil {
		return models.ProductListing{}
	}
	return r.Listing
}

// ProductResult is the answer to a single-product lookup.
type ProductResult struct {
	Product *models.Product
	Err     error
}

// Found reports whether the catalog returned the product.
func (r ProductResult) Found() bool { return r.Product != nil }

// CatalogService reads products from the upstream catalog. Failures are
// carried in the returned results, never as Go errors.
type CatalogService struct {
	baseURL string
	timeout time.Duration
	opts    options
}

func NewCatalogService(baseURL string, timeout time.Duration, opts ...Option) *CatalogService {
	return &CatalogService{
		baseURL: baseURL,
		timeout: timeout,
		opts:    buildOptions(opts),
	}
}

// ListAll fetches the full catalog.
func (s *CatalogService) ListAll(ctx context.Context) ListingResult {
	return s.fetchListing(ctx, s.baseURL)
}

// GetByID fetches one product.
func (s *CatalogService) GetByID(ctx context.Context, id int64) ProductResult {
	return s.fetchOne(ctx, s.baseURL+"/"+strconv.FormatInt(id, 10))
}

// ListByCategory fetches the products of one category.
func (s *CatalogService) ListByCategory(ctx context.Context, category string) ListingResult {
	return s.fetchListing(ctx, s.baseURL+"/category/"+url.PathEscape(category))
}

// ListByPriceRange fetches the full catalog and keeps the products priced
// within [min, max].
func (s *CatalogService) ListByPriceRange(ctx context.Context, min, max float64) ListingResult {
	all := s.ListAll(ctx)
	if all.Failed() {
		return ListingResult{Listing: models.ProductListing{}, Err: all.Err}
	}
	return ListingResult{Listing: all.Listing.InPriceRange(min, max)}
}

func (s *CatalogService) request(ctx context.Context, target string) *produtoshttp.Request {
	return produtoshttp.Get(target).
		WithContext(ctx).
		Timeout(s.timeout).
		Retry(1, 0).
		Using(s.opts.client)
}

func (s *CatalogService) fetchListing(ctx context.Context, target string) ListingResult {
	log := logger.WithCtx(ctx)

	var cached []models.Product
	if s.opts.cacheTTL > 0 && s.opts.cache.Get(ctx, target, &cached) {
		return ListingResult{Listing: models.ProductListing(cached)}
	}

	fail := func(err error) ListingResult {
		metrics.RecordCatalogFetch(kindListing, outcomeFailed)
		log.Warn("catalog listing failed", "url", target, "error", err)
		return ListingResult{Listing: models.ProductListing{}, Err: err}
	}

	resp, err := s.request(ctx, target).Send()
	if err != nil {
		return fail(err)
	}
	if err := resp.Throw(); err != nil {
		return fail(fmt.Errorf("%w: GET %s: %w", ErrUpstreamStatus, target, err))
	}

	items := []models.Product{}
	if !resp.Empty() {
		if err := resp.JSON(&items); err != nil {
			return fail(fmt.Errorf("services: GET %s: %w", target, err))
		}
	}
	for i, p := range items {
		if err := p.Validate(); err != nil {
			return fail(fmt.Errorf("services: GET %s: item %d: %w", target, i, err))
		}
	}

	if len(items) == 0 {
		metrics.RecordCatalogFetch(kindListing, outcomeEmpty)
		log.Info("catalog listing empty", "url", target)
		return ListingResult{Listing: models.ProductListing{}}
	}

	metrics.RecordCatalogFetch(kindListing, outcomeOK)
	if s.opts.cacheTTL > 0 {
		if err := s.opts.cache.Set(ctx, target, items, s.opts.cacheTTL); err != nil {
			log.Warn("catalog cache write failed", "url", target, "error", err)
		}
	}
	return ListingResult{Listing: models.ProductListing(items)}
}

func (s *CatalogService) fetchOne(ctx context.Context, target string) ProductResult {
	log := logger.WithCtx(ctx)

	resp, err := s.request(ctx, target).Send()
	if err == nil {
		err = resp.Throw()
		if err != nil {
			err = fmt.Errorf("%w: GET %s: %w", ErrUpstreamStatus, target, err)
		}
	}
	if err != nil {
		metrics.RecordCatalogFetch(kindProduct, outcomeFailed)
		log.Warn("catalog lookup failed", "url", target, "error", err)
		return ProductResult{Err: err}
	}

	if resp.Empty() {
		metrics.RecordCatalogFetch(kindProduct, outcomeEmpty)
		log.Info("catalog product not found", "url", target)
		return ProductResult{Err: ErrProductNotFound}
	}

	var p models.Product
	err = resp.JSON(&p)
	if err == nil {
		err = p.Validate()
	}
	if err != nil {
		metrics.RecordCatalogFetch(kindProduct, outcomeFailed)
		log.Warn("catalog lookup failed", "url", target, "error", err)
		return ProductResult{Err: fmt.Errorf("services: GET %s: %w", target, err)}
	}

	metrics.RecordCatalogFetch(kindProduct, outcomeOK)
	return ProductResult{Product: &p}
}
