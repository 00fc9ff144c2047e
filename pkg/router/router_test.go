package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojas7/produtos/pkg/router"
)

func TestGroupRoutesAreNamedAndListed(t *testing.T) {
	r := router.New()
	g := r.Group("/produtos")
	g.Get("/", "produtos.index", func(w http.ResponseWriter, _ *http.Request) {})
	g.Get("/{id}", "produtos.show", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chi.URLParam(r, "id")))
	})
	r.Post("/produtos_enviar", "pedidos.enviar", func(w http.ResponseWriter, _ *http.Request) {})

	routes := r.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, router.RouteInfo{Method: http.MethodGet, Path: "/produtos", Name: "produtos.index"}, routes[0])
	assert.Equal(t, "/produtos_enviar", routes[2].Path)

	url, err := r.URL("produtos.show", map[string]string{"id": "7"})
	require.NoError(t, err)
	assert.Equal(t, "/produtos/7", url)

	_, err = r.URL("produtos.show", nil)
	assert.Error(t, err)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	assert.Equal(t, "7", rec.Body.String())
}

func TestGroupMiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	r.Group("/a", mw("group")).Get("/b", "", func(w http.ResponseWriter, _ *http.Request) {
		order = append(order, "handler")
	}, mw("route"))

	r.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/a/b", nil))
	assert.Equal(t, []string{"group", "route", "handler"}, order)
}
