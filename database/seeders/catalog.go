package seeders

import (
	"context"

	"gorm.io/gorm"

	"github.com/lojas7/produtos/app/repositories"
	"github.com/lojas7/produtos/app/services"
	"github.com/lojas7/produtos/config"
)

func init() {
	Register("catalog", SeedCatalog)
}

// SeedCatalog warms the cache store with the full upstream catalog.
func SeedCatalog(ctx context.Context, db *gorm.DB) error {
	catalog := services.NewCatalogService(config.CatalogURL(), config.HTTPClientTimeout())
	_, err := services.NewProductService(catalog, repositories.NewProductRepository(db)).Refresh(ctx)
	return err
}
