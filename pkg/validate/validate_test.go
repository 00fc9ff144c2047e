package validate_test

import (
	"testing"

	"github.com/lojas7/produtos/pkg/validate"
)

type orderInput struct {
	ProductIDs *[]int64 `json:"product_ids" validate:"required,max=500"`
}

type priceQuery struct {
	Min string `json:"preco_min" validate:"required,numeric"`
	Max string `json:"preco_max" validate:"required,numeric"`
}

func TestRequiredPointerAcceptsEmptyList(t *testing.T) {
	empty := []int64{}
	if errs := validate.Struct(orderInput{ProductIDs: &empty}); validate.HasErrors(errs) {
		t.Errorf("expected empty list to pass, got: %v", errs)
	}

	errs := validate.Struct(orderInput{})
	if _, ok := errs["product_ids"]; !ok {
		t.Error("expected missing product_ids to fail")
	}
}

func TestMaxItems(t *testing.T) {
	ids := make([]int64, 501)
	errs := validate.Struct(&orderInput{ProductIDs: &ids})
	if errs["product_ids"] != "The product_ids must not have more than 500 items." {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestNumericQuery(t *testing.T) {
	if errs := validate.Struct(priceQuery{Min: "10", Max: "55.99"}); validate.HasErrors(errs) {
		t.Errorf("expected valid range, got: %v", errs)
	}

	errs := validate.Struct(priceQuery{Min: "abc"})
	if errs["preco_min"] != "The preco_min field must be a number." {
		t.Errorf("unexpected preco_min error: %q", errs["preco_min"])
	}
	if errs["preco_max"] != "The preco_max field is required." {
		t.Errorf("unexpected preco_max error: %q", errs["preco_max"])
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Price float64 `json:"price" validate:"gte=0,lte=10000"`
	}
	if errs := validate.Struct(in{Price: -1}); !validate.HasErrors(errs) {
		t.Error("expected negative price to fail")
	}
	if errs := validate.Struct(in{Price: 0}); validate.HasErrors(errs) {
		t.Errorf("expected zero price to pass, got: %v", errs)
	}
}

func TestInAndBetween(t *testing.T) {
	type in struct {
		Category string  `json:"category" validate:"required,in=electronics,jewelery,men's clothing"`
		Rate     float64 `json:"rate"     validate:"nullable,between=0,5"`
	}
	if errs := validate.Struct(in{Category: "jewelery", Rate: 4.5}); validate.HasErrors(errs) {
		t.Errorf("expected pass, got: %v", errs)
	}
	if errs := validate.Struct(in{Category: "toys"}); errs["category"] == "" {
		t.Error("expected category outside the list to fail")
	}
	if errs := validate.Struct(in{Category: "electronics", Rate: 7}); errs["rate"] == "" {
		t.Error("expected rate 7 to fail between=0,5")
	}
}
