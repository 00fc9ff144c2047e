package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lojas7/produtos/pkg/collection"
	"github.com/lojas7/produtos/pkg/validate"
)

// ErrInvalidProduct marks an upstream record that cannot be cached.
var ErrInvalidProduct = errors.New("invalid product")

// Product is one catalog item. The upstream id is the only identity; every
// other field is replaced by the latest fetch.
type Product struct {
	ID          int64   `gorm:"primaryKey;autoIncrement:false" json:"id"    validate:"required,gt=0"`
	Title       string  `gorm:"size:255"                       json:"title" validate:"required"`
	Description string  `gorm:"type:text"                      json:"description"`
	Price       float64 `gorm:"not null"                       json:"price"`
	Category    string  `gorm:"size:255"                       json:"category"`
	Image       string  `gorm:"size:1024"                      json:"image"`
}

func (Product) TableName() string { return "products" }

// Validate rejects records without a positive id or a title.
func (p Product) Validate() error {
	errs := validate.Struct(p)
	if !validate.HasErrors(errs) {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	for _, m := range errs {
		msgs = append(msgs, m)
	}
	sort.Strings(msgs)
	return fmt.Errorf("%w: %s", ErrInvalidProduct, strings.Join(msgs, " "))
}

// ProductListing is an ordered set of products, serialized as
// {"produtos": [...]}.
type ProductListing []Product

// MarshalJSON never emits null for an empty listing.
func (l ProductListing) MarshalJSON() ([]byte, error) {
	items := []Product(l)
	if items == nil {
		items = []Product{}
	}
	return json.Marshal(struct {
		Produtos []Product `json:"produtos"`
	}{items})
}

// IDs returns the product ids in listing order.
func (l ProductListing) IDs() []int64 {
	return collection.Map(l, func(p Product) int64 { return p.ID })
}

// InPriceRange keeps products whose price lies in [min, max].
func (l ProductListing) InPriceRange(min, max float64) ProductListing {
	return collection.Filter(l, func(p Product) bool {
		return p.Price >= min && p.Price <= max
	})
}

// ProductSummary is the cached projection used to build orders.
type ProductSummary struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}
