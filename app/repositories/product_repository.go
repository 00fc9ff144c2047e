package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lojas7/produtos/app/models"
	"github.com/lojas7/produtos/pkg/collection"
	"github.com/lojas7/produtos/pkg/logger"
	"github.com/lojas7/produtos/pkg/metrics"
)

// ProductRepository owns the cached product records.
type ProductRepository struct {
	db     *gorm.DB
	scoped bool
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// WithConnection runs fn against a repository bound to one dedicated pool
// connection. The connection is returned to the pool on every exit path.
// Nested calls reuse the outer connection.
func (r *ProductRepository) WithConnection(ctx context.Context, fn func(repo *ProductRepository) error) error {
	if r.scoped {
		return fn(r)
	}
	return r.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		return fn(&ProductRepository{
			db:     tx.Session(&gorm.Session{NewDB: true, Context: ctx}),
			scoped: true,
		})
	})
}

// UpsertOne inserts p or replaces every column of the record with the same id.
func (r *ProductRepository) UpsertOne(ctx context.Context, p models.Product) error {
	defer metrics.ObserveDBQuery("upsert", time.Now())

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&p).Error
	if err != nil {
		return fmt.Errorf("repositories: upsert product %d: %w", p.ID, err)
	}
	return nil
}

// UpsertMany upserts every product in listing order and stops at the first
// failure. Earlier writes stay committed.
func (r *ProductRepository) UpsertMany(ctx context.Context, listing models.ProductListing) error {
	for _, p := range listing {
		if err := r.UpsertOne(ctx, p); err != nil {
			logger.WithCtx(ctx).Error("cache upsert aborted", "product_id", p.ID, "error", err)
			return err
		}
	}
	return nil
}

// FindByIDs returns the cached summaries whose id is in ids, ordered by id.
// An empty ids issues no query.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []int64) ([]models.ProductSummary, error) {
	out := []models.ProductSummary{}
	if len(ids) == 0 {
		return out, nil
	}
	defer metrics.ObserveDBQuery("find", time.Now())

	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("id", "title", "price").
		Where("id IN ?", collection.Unique(ids)).
		Order("id asc").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("repositories: find products %v: %w", ids, err)
	}
	return out, nil
}

// FindProducts returns the full cached records for ids, ordered by id.
func (r *ProductRepository) FindProducts(ctx context.Context, ids []int64) (models.ProductListing, error) {
	out := models.ProductListing{}
	if len(ids) == 0 {
		return out, nil
	}
	defer metrics.ObserveDBQuery("find", time.Now())

	if err := r.db.WithContext(ctx).Where("id IN ?", collection.Unique(ids)).Order("id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("repositories: find products %v: %w", ids, err)
	}
	return out, nil
}

// All returns every cached record ordered by id.
func (r *ProductRepository) All(ctx context.Context) (models.ProductListing, error) {
	defer metrics.ObserveDBQuery("find", time.Now())

	out := models.ProductListing{}
	if err := r.db.WithContext(ctx).Order("id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("repositories: list products: %w", err)
	}
	return out, nil
}

// Count returns the number of cached records.
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveDBQuery("count", time.Now())

	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("repositories: count products: %w", err)
	}
	return n, nil
}
