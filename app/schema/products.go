// Package schema defines the read-only GraphQL view of the product cache.
//
//	{ products(ids: [1, 5]) { id title price } }
//	{ product(id: 1) { title category } }
//	{ productCount }
package schema

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/lojas7/produtos/app/repositories"
	gqlhttp "github.com/lojas7/produtos/pkg/graphql"
)

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name:        "Product",
	Description: "A cached catalog product.",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"title":       &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"price":       &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"category":    &graphql.Field{Type: graphql.String},
		"image":       &graphql.Field{Type: graphql.String},
	},
})

// Products builds the schema over repo. Resolvers only read the cache; they
// never call the upstream catalog.
func Products(repo *repositories.ProductRepository) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type:        graphql.NewList(productType),
				Description: "Cached products, all of them when ids is omitted.",
				Args: graphql.FieldConfigArgument{
					"ids": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.Int))},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					raw, ok := p.Args["ids"].([]interface{})
					if !ok {
						return repo.All(p.Context)
					}
					ids, err := toIDs(raw)
					if err != nil {
						return nil, err
					}
					return repo.FindProducts(p.Context, ids)
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, ok := p.Args["id"].(int)
					if !ok {
						return nil, fmt.Errorf("schema: invalid id %v", p.Args["id"])
					}
					found, err := repo.FindProducts(p.Context, []int64{int64(id)})
					if err != nil || len(found) == 0 {
						return nil, err
					}
					return found[0], nil
				},
			},
			"productCount": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return repo.Count(p.Context)
				},
			},
		},
	})
	return gqlhttp.NewSchema(query)
}

func toIDs(raw []interface{}) ([]int64, error) {
	ids := make([]int64, 0, len(raw))
	for _, v := range raw {
		n, ok := v.(int)
		if !ok {
			return nil, fmt.Errorf("schema: invalid id %v", v)
		}
		ids = append(ids, int64(n))
	}
	return ids, nil
}
