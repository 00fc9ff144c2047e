package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojas7/produtos/app/models"
)

func TestListingJSON(t *testing.T) {
	b, err := json.Marshal(models.ProductListing(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"produtos":[]}`, string(b))

	b, err = json.Marshal(models.ProductListing{{ID: 1, Title: "Bag", Price: 109.95, Category: "men's clothing"}})
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"produtos":[{"id":1,"title":"Bag","description":"","price":109.95,"category":"men's clothing","image":""}]}`,
		string(b))
}

func TestProductIgnoresExtraUpstreamFields(t *testing.T) {
	var p models.Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"title":"Jacket","price":55.99,"rating":{"rate":4.7,"count":500}}`), &p))
	assert.Equal(t, models.Product{ID: 3, Title: "Jacket", Price: 55.99}, p)
}

func TestInPriceRangeIsInclusive(t *testing.T) {
	l := models.ProductListing{
		{ID: 1, Price: 9.99},
		{ID: 2, Price: 10},
		{ID: 3, Price: 15},
		{ID: 4, Price: 20},
		{ID: 5, Price: 20.01},
	}
	assert.Equal(t, []int64{2, 3, 4}, l.InPriceRange(10, 20).IDs())
	assert.Empty(t, l.InPriceRange(30, 40))
	assert.NotNil(t, l.InPriceRange(30, 40))
}

func TestOrderPayloadJSON(t *testing.T) {
	p := models.NewOrderPayload([]models.ProductSummary{{ID: 5, Title: "Widget", Price: 9.99}})
	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id_pedido":0,"produtos":[{"id_produto":5,"title":"Widget","price":9.99}]}`, string(b))
}

func TestProductValidate(t *testing.T) {
	assert.NoError(t, models.Product{ID: 1, Title: "Bag"}.Validate())

	err := models.Product{}.Validate()
	require.ErrorIs(t, err, models.ErrInvalidProduct)
	assert.Contains(t, err.Error(), "id")
	assert.Contains(t, err.Error(), "title")

	assert.ErrorIs(t, models.Product{ID: -4, Title: "Bag"}.Validate(), models.ErrInvalidProduct)
	assert.ErrorIs(t, models.Product{ID: 2, Title: "  "}.Validate(), models.ErrInvalidProduct)
}
