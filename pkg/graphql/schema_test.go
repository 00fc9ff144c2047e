package graphql_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gql "github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojas7/produtos/pkg/graphql"
)

func helloSchema(t *testing.T) gql.Schema {
	t.Helper()
	schema, err := graphql.NewSchema(gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"hello": &gql.Field{
				Type: gql.String,
				Args: gql.FieldConfigArgument{"name": &gql.ArgumentConfig{Type: gql.String}},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					name, _ := p.Args["name"].(string)
					return "olá " + name, nil
				},
			},
		},
	}))
	require.NoError(t, err)
	return schema
}

func TestHandlerExecutesQuery(t *testing.T) {
	h := graphql.Handler(helloSchema(t))

	body := `{"query":"query($n: String){ hello(name: $n) }","variables":{"n":"loja"}}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"hello":"olá loja"}}`, rec.Body.String())
}

func TestHandlerRejectsBadBodies(t *testing.T) {
	h := graphql.Handler(helloSchema(t))

	for _, body := range []string{`not json`, `{}`} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestHandlerReportsQueryErrors(t *testing.T) {
	h := graphql.Handler(helloSchema(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"{ nope }"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"errors"`)
}
