package controllers

import (
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lojas7/produtos/app/services"
	"github.com/lojas7/produtos/pkg/ctx"
)

// ProductController serves the read-through catalog routes.
type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// Index handles GET /produtos.
func (pc *ProductController) Index(c *ctx.Context) {
	res, err := pc.products.ListAll(c.Context())
	if err != nil {
		pc.internal(c, err)
		return
	}
	if len(res.Listing) == 0 {
		c.Message(http.StatusInternalServerError, msgListFailed)
		return
	}
	c.Success(res.Listing)
}

// Show handles GET /produtos/{id}.
func (pc *ProductController) Show(c *ctx.Context) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.Error(http.StatusBadRequest, "O id do produto deve ser um número inteiro: "+raw)
		return
	}

	res, err := pc.products.GetByID(c.Context(), id)
	if err != nil {
		pc.internal(c, err)
		return
	}
	if !res.Found() {
		c.Message(http.StatusNotFound, msgProductNotFound)
		return
	}
	c.Success(res.Product)
}

// Category handles GET /produtos/category/{category}.
func (pc *ProductController) Category(c *ctx.Context) {
	raw := c.Param("category")
	category, err := url.PathUnescape(raw)
	if err != nil {
		c.Error(http.StatusBadRequest, "Categoria inválida: "+raw)
		return
	}

	res, err := pc.products.ListByCategory(c.Context(), category)
	if err != nil {
		pc.internal(c, err)
		return
	}
	if len(res.Listing) == 0 {
		c.Message(http.StatusNotFound, msgCategoryNotFound)
		return
	}
	c.Success(res.Listing)
}

// PriceQuery is the query string of GET /produtos/preco.
type PriceQuery struct {
	Min string `json:"preco_min" validate:"required,numeric"`
	Max string `json:"preco_max" validate:"required,numeric"`
}

// Bounds parses both limits. Validation has already rejected non-numbers.
func (q PriceQuery) Bounds() (min, max float64) {
	min, _ = strconv.ParseFloat(q.Min, 64)
	max, _ = strconv.ParseFloat(q.Max, 64)
	return min, max
}

// PriceRange handles GET /produtos/preco?preco_min=&preco_max=.
func (pc *ProductController) PriceRange(c *ctx.Context) {
	q := PriceQuery{Min: c.Query("preco_min"), Max: c.Query("preco_max")}
	if !c.BindQuery(&q) {
		return
	}
	min, max := q.Bounds()
	if !finite(min) || !finite(max) {
		c.Error(http.StatusBadRequest, "preco_min e preco_max devem ser números finitos.")
		return
	}

	res, err := pc.products.ListByPriceRange(c.Context(), min, max)
	if err != nil {
		pc.internal(c, err)
		return
	}
	if len(res.Listing) == 0 {
		c.Message(http.StatusNotFound, msgPriceNotFound)
		return
	}
	c.Success(res.Listing)
}

func (pc *ProductController) internal(c *ctx.Context, err error) {
	c.Logger().Error("read-through failed", "path", c.R.URL.Path, "error", err)
	c.Error(http.StatusInternalServerError, err.Error())
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
