package services

import (
	"context"

	"github.com/lojas7/produtos/app/models"
	"github.com/lojas7/produtos/app/repositories"
	"github.com/lojas7/produtos/pkg/logger"
)

// Catalog is the upstream read surface ProductService depends on.
type Catalog interface {
	ListAll(ctx context.Context) ListingResult
	GetByID(ctx context.Context, id int64) ProductResult
	ListByCategory(ctx context.Context, category string) ListingResult
	ListByPriceRange(ctx context.Context, min, max float64) ListingResult
}

// ProductService reads through the catalog and remembers every product it
// returns in the local cache store.
//
// The returned error is only ever a store failure. Catalog failures stay
// inside the result.
type ProductService struct {
	catalog Catalog
	repo    *repositories.ProductRepository
}

func NewProductService(catalog Catalog, repo *repositories.ProductRepository) *ProductService {
	return &ProductService{catalog: catalog, repo: repo}
}

func (s *ProductService) ListAll(ctx context.Context) (ListingResult, error) {
	res := s.catalog.ListAll(ctx)
	return res, s.remember(ctx, res.Listing)
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (ProductResult, error) {
	res := s.catalog.GetByID(ctx, id)
	if !res.Found() {
		return res, nil
	}
	err := s.repo.WithConnection(ctx, func(repo *repositories.ProductRepository) error {
		return repo.UpsertOne(ctx, *res.Product)
	})
	return res, err
}

func (s *ProductService) ListByCategory(ctx context.Context, category string) (ListingResult, error) {
	res := s.catalog.ListByCategory(ctx, category)
	return res, s.remember(ctx, res.Listing)
}

// ListByPriceRange caches only the products inside the range.
func (s *ProductService) ListByPriceRange(ctx context.Context, min, max float64) (ListingResult, error) {
	res := s.catalog.ListByPriceRange(ctx, min, max)
	return res, s.remember(ctx, res.Listing)
}

// Refresh copies the full catalog into the store and returns how many
// products were written. An unreachable catalog is reported as an error.
func (s *ProductService) Refresh(ctx context.Context) (int, error) {
	res := s.catalog.ListAll(ctx)
	if res.Failed() {
		return 0, res.Err
	}
	if err := s.remember(ctx, res.Listing); err != nil {
		return 0, err
	}
	logger.WithCtx(ctx).Info("catalog refreshed", "products", len(res.Listing))
	return len(res.Listing), nil
}

func (s *ProductService) remember(ctx context.Context, listing models.ProductListing) error {
	if len(listing) == 0 {
		return nil
	}
	return s.repo.WithConnection(ctx, func(repo *repositories.ProductRepository) error {
		return repo.UpsertMany(ctx, listing)
	})
}
