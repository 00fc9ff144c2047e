package ctx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "github.com/lojas7/produtos/pkg/ctx"
)

func TestParamAndQuery(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/produtos/{id}", appctx.Wrap(func(c *appctx.Context) {
		c.Success(map[string]string{"id": c.Param("id"), "q": c.Query("q")})
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/produtos/3?q=x", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"3","q":"x"}`, rec.Body.String())
}

func TestMessageAndError(t *testing.T) {
	rec := httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) {
		c.Message(http.StatusNotFound, "Produto não encontrado ou erro na requisição.")
	})(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Produto não encontrado ou erro na requisição."}`, rec.Body.String())

	rec = httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) {
		c.Error(http.StatusInternalServerError, "boom")
	})(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.JSONEq(t, `{"error":"boom"}`, rec.Body.String())
}

func TestBindJSON(t *testing.T) {
	type input struct {
		ProductIDs *[]int64 `json:"product_ids" validate:"required"`
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_ids":[5]}`))
	appctx.Wrap(func(c *appctx.Context) {
		var in input
		require.True(t, c.BindJSON(&in))
		assert.Equal(t, []int64{5}, *in.ProductIDs)
	})(rec, req)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_ids":["a"]}`))
	appctx.Wrap(func(c *appctx.Context) {
		var in input
		assert.False(t, c.BindJSON(&in))
	})(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
}

func TestBindQuery(t *testing.T) {
	type query struct {
		Min string `json:"preco_min" validate:"required,numeric"`
	}

	rec := httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) {
		assert.False(t, c.BindQuery(&query{Min: c.Query("preco_min")}))
	})(rec, httptest.NewRequest(http.MethodGet, "/produtos/preco", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t,
		`{"error":"The preco_min field is required.","errors":{"preco_min":"The preco_min field is required."}}`,
		rec.Body.String())
}
