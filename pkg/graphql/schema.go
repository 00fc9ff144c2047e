// Package graphql serves graphql-go schemas over HTTP.
//
//	schema, err := graphql.NewSchema(rootQuery)
//	router.Handle(http.MethodPost, "/graphql", "graphql", graphql.Handler(schema))
package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/lojas7/produtos/pkg/logger"
	"github.com/lojas7/produtos/pkg/response"
)

// NewSchema creates a read-only schema from a root query object.
func NewSchema(query *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
	})
}

// Request is the standard GraphQL-over-HTTP body.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler executes POSTed queries against schema. Query errors are returned
// in the "errors" member with a 200, as the GraphQL convention expects.
func Handler(schema graphql.Schema) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid GraphQL request body: "+err.Error())
			return
		}
		if req.Query == "" {
			response.BadRequest(w, "query is required")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        r.Context(),
		})
		if result.HasErrors() {
			logger.WithCtx(r.Context()).Warn("graphql: query failed", "errors", result.Errors)
		}
		response.JSON(w, http.StatusOK, result)
	})
}
