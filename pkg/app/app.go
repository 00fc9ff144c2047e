// Package app wires the produtos dependencies together.
//
// One Application is built at process start and handed to the HTTP kernel,
// the gRPC health server and the CLI. Nothing else holds service instances.
//
//	a, err := app.Boot(ctx)
//	if err != nil { ... }
//	defer a.Close()
//	server.Start(ctx, a)
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gorm.io/gorm"

	_ "github.com/lojas7/produtos/database/migrations" // register migrations
	"github.com/lojas7/produtos/app/repositories"
	"github.com/lojas7/produtos/app/services"
	"github.com/lojas7/produtos/config"
	"github.com/lojas7/produtos/pkg/cache"
	"github.com/lojas7/produtos/pkg/database"
	"github.com/lojas7/produtos/pkg/logger"
	"github.com/lojas7/produtos/pkg/migration"
)

// Application holds every long-lived dependency of the service.
type Application struct {
	DB       *gorm.DB
	Cache    cache.Store
	Repo     *repositories.ProductRepository
	Catalog  *services.CatalogService
	Products *services.ProductService
	Orders   *services.OrderService
}

// New builds the services over db and store using the configured catalog
// and order-intake URLs. A nil store disables the catalog response cache.
func New(db *gorm.DB, store cache.Store, opts ...services.Option) *Application {
	if store == nil {
		store = cache.Nop{}
	}
	timeout := config.HTTPClientTimeout()
	repo := repositories.NewProductRepository(db)

	catalogOpts := append([]services.Option{services.WithCache(store, config.CatalogCacheTTL())}, opts...)
	catalog := services.NewCatalogService(config.CatalogURL(), timeout, catalogOpts...)

	return &Application{
		DB:       db,
		Cache:    store,
		Repo:     repo,
		Catalog:  catalog,
		Products: services.NewProductService(catalog, repo),
		Orders:   services.NewOrderService(repo, config.OrderIntakeURL(), timeout, opts...),
	}
}

// Boot loads configuration, opens and migrates the cache store and, when
// CATALOG_CACHE_TTL is positive, connects to Redis. An unreachable Redis
// only disables the response cache.
func Boot(ctx context.Context) (*Application, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("app: config: %w", err)
	}

	db, err := database.Connect()
	if err != nil {
		return nil, err
	}
	if err := migration.New(db).WithOutput(io.Discard).Run(); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("app: migrate: %w", err)
	}

	var store cache.Store = cache.Nop{}
	if config.CatalogCacheTTL() > 0 {
		rs, err := cache.Connect(ctx)
		if err != nil {
			logger.Warn("catalog cache disabled", "addr", config.RedisAddr(), "error", err)
		} else {
			store = rs
		}
	}

	logger.Info("application booted",
		"db_driver", config.DatabaseDriver(),
		"catalog_url", config.CatalogURL(),
		"order_intake_url", config.OrderIntakeURL(),
	)
	return New(db, store), nil
}

// Ping reports whether the cache store is reachable. It backs /healthz and
// the gRPC health service.
func (a *Application) Ping(ctx context.Context) error {
	return database.Ping(ctx, a.DB)
}

// Close releases the Redis client and the database pool.
func (a *Application) Close() error {
	var errs []error
	if a.Cache != nil {
		errs = append(errs, a.Cache.Close())
	}
	errs = append(errs, database.Close(a.DB))
	return errors.Join(errs...)
}
