package migrations

import (
	"gorm.io/gorm"

	"github.com/lojas7/produtos/app/models"
	"github.com/lojas7/produtos/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_products_table", &CreateProductsTable{})
}

// CreateProductsTable creates the product cache: one row per upstream id.
type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}
