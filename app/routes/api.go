package routes

import (
	"net/http"

	"github.com/lojas7/produtos/app/controllers"
	"github.com/lojas7/produtos/app/schema"
	"github.com/lojas7/produtos/pkg/app"
	"github.com/lojas7/produtos/pkg/ctx"
	"github.com/lojas7/produtos/pkg/graphql"
	"github.com/lojas7/produtos/pkg/metrics"
	"github.com/lojas7/produtos/pkg/router"
)

// RegisterAPI mounts every produtos route on r.
func RegisterAPI(r *router.Router, a *app.Application) error {
	productController := controllers.NewProductController(a.Products)
	orderController := controllers.NewOrderController(a.Orders)
	healthController := controllers.NewHealthController(a.DB)

	produtos := r.Group("/produtos")
	produtos.Get("/", "produtos.index", ctx.Wrap(productController.Index))
	produtos.Get("/preco", "produtos.price", ctx.Wrap(productController.PriceRange))
	produtos.Get("/category/{category}", "produtos.category", ctx.Wrap(productController.Category))
	produtos.Get("/{id}", "produtos.show", ctx.Wrap(productController.Show))

	r.Post("/produtos_enviar", "pedidos.enviar", ctx.Wrap(orderController.Send))

	r.Get("/healthz", "health", ctx.Wrap(healthController.Check))
	r.Handle(http.MethodGet, "/metrics", "metrics", metrics.Handler())

	gql, err := schema.Products(a.Repo)
	if err != nil {
		return err
	}
	r.Handle(http.MethodPost, "/graphql", "graphql", graphql.Handler(gql))
	return nil
}
