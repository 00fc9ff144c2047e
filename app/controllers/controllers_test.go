package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojas7/produtos/app/models"
	"github.com/lojas7/produtos/config"
	"github.com/lojas7/produtos/internal/kernel"
	"github.com/lojas7/produtos/pkg/app"
	"github.com/lojas7/produtos/pkg/database"
	produtoshttp "github.com/lojas7/produtos/pkg/http"
	"github.com/lojas7/produtos/pkg/testkit"
)

const (
	catalogURL = "http://catalog.test/products"
	intakeURL  = "http://pedidos.test/pedidos/criar"
)

func newApp(t *testing.T) *app.Application {
	t.Helper()
	config.Set("CATALOG_URL", catalogURL)
	config.Set("ORDER_INTAKE_URL", intakeURL)
	t.Cleanup(config.Reset)

	return app.New(testkit.OpenDB(t), nil)
}

func newTarget(t *testing.T, a *app.Application) testkit.Target {
	t.Helper()
	h, err := kernel.Handler(a)
	require.NoError(t, err)

	return testkit.Target{
		Handler: h,
		Seed: func(t *testing.T, raw []byte) {
			var items []models.Product
			require.NoError(t, json.Unmarshal(raw, &items))
			require.NoError(t, a.Repo.UpsertMany(context.Background(), items))
		},
		Reset: func(t *testing.T) {
			require.NoError(t, a.DB.Exec("DELETE FROM products").Error)
		},
	}
}

func TestAPI(t *testing.T) {
	a := newApp(t)
	testkit.RunDir(t, newTarget(t, a), "testdata")
}

func TestReadRoutesUpsertWhatTheyReturn(t *testing.T) {
	a := newApp(t)
	target := newTarget(t, a)

	testkit.Run(t, target, "testdata/price_range.json")

	cached, err := a.Repo.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, cached.IDs(), "only the filtered products are cached")
}

func TestOrderDownstreamErrorText(t *testing.T) {
	a := newApp(t)
	h, err := kernel.Handler(a)
	require.NoError(t, err)
	require.NoError(t, a.Repo.UpsertOne(context.Background(), models.Product{ID: 5, Title: "Widget", Price: 9.99}))

	mt := testkit.NewMockTransport(&testkit.Scenario{
		IsMockRequired: true,
		Mocks: []testkit.MockStep{{
			Method:     http.MethodPost,
			MatchURL:   intakeURL,
			Times:      1,
			ReturnData: testkit.MockReturnData{Error: "connection refused"},
		}},
	})
	produtoshttp.DefaultClient.Transport = mt
	t.Cleanup(produtoshttp.ResetTransport)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/produtos_enviar", strings.NewReader(`{"product_ids":[5]}`)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, strings.HasPrefix(body["error"], "Erro ao enviar pedido para o endpoint externo: "), body["error"])
	assert.Contains(t, body["error"], "connection refused")
	assert.Empty(t, mt.AssertAllCalled(), "exactly one attempt")
}

func TestOrderInternalErrorText(t *testing.T) {
	a := newApp(t)
	h, err := kernel.Handler(a)
	require.NoError(t, err)
	require.NoError(t, database.Close(a.DB))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/produtos_enviar", strings.NewReader(`{"product_ids":[5]}`)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Erro ao processar e enviar pedido: ")
}

func TestHealthReportsClosedStore(t *testing.T) {
	a := newApp(t)
	h, err := kernel.Handler(a)
	require.NoError(t, err)
	require.NoError(t, database.Close(a.DB))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReadStoreFailureIs500WithErrorText(t *testing.T) {
	a := newApp(t)
	h, err := kernel.Handler(a)
	require.NoError(t, err)
	require.NoError(t, database.Close(a.DB))

	mt := testkit.NewMockTransport(&testkit.Scenario{
		Mocks: []testkit.MockStep{{
			MatchURL:   catalogURL + "/1",
			ReturnData: testkit.MockReturnData{JSON: []byte(`{"id":1,"title":"Backpack","price":109.95}`)},
		}},
	})
	produtoshttp.DefaultClient.Transport = mt
	t.Cleanup(produtoshttp.ResetTransport)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/produtos/1", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
}

func TestCategoryRejectsMalformedEscape(t *testing.T) {
	a := newApp(t)
	h, err := kernel.Handler(a)
	require.NoError(t, err)

	mt := testkit.NewMockTransport(&testkit.Scenario{IsMockRequired: true})
	produtoshttp.DefaultClient.Transport = mt
	t.Cleanup(produtoshttp.ResetTransport)

	req := httptest.NewRequest(http.MethodGet, "/produtos/category/x", nil)
	req.URL.Path = "/produtos/category/%zz"
	req.URL.RawPath = "/produtos/category/%zz"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Categoria inválida")
	assert.Empty(t, mt.Calls(), "no upstream call for a malformed category")
}

func TestInvalidUpstreamRecordsAreNotCached(t *testing.T) {
	a := newApp(t)
	h, err := kernel.Handler(a)
	require.NoError(t, err)

	mt := testkit.NewMockTransport(&testkit.Scenario{
		IsMockRequired: true,
		Mocks: []testkit.MockStep{
			{Method: http.MethodGet, MatchURL: catalogURL + "/7", ReturnData: testkit.MockReturnData{JSON: []byte(`{}`)}},
			{Method: http.MethodGet, MatchURL: catalogURL, ReturnData: testkit.MockReturnData{
				JSON: []byte(`[{"title":"no id A"},{"title":"no id B","price":3}]`),
			}},
		},
	})
	produtoshttp.DefaultClient.Transport = mt
	t.Cleanup(produtoshttp.ResetTransport)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/produtos/7", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/produtos", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	n, err := a.Repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRoutesAreNamed(t *testing.T) {
	r, err := kernel.Router(newApp(t))
	require.NoError(t, err)

	url, err := r.URL("produtos.show", map[string]string{"id": "5"})
	require.NoError(t, err)
	assert.Equal(t, "/produtos/5", url)

	path, ok := r.Path("pedidos.enviar")
	assert.True(t, ok)
	assert.Equal(t, "/produtos_enviar", path)
}
