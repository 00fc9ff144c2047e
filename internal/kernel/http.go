// Package kernel assembles the produtos HTTP handler: the global middleware
// stack, the fallback handlers and the API routes.
package kernel

import (
	"net/http"
	"time"

	"github.com/lojas7/produtos/app/routes"
	"github.com/lojas7/produtos/config"
	"github.com/lojas7/produtos/pkg/app"
	"github.com/lojas7/produtos/pkg/metrics"
	"github.com/lojas7/produtos/pkg/middleware"
	"github.com/lojas7/produtos/pkg/reqid"
	"github.com/lojas7/produtos/pkg/response"
	"github.com/lojas7/produtos/pkg/router"
)

const defaultMaxBodyBytes = 1 << 20

// Router builds the router with middleware and routes mounted. route:list
// uses it to print the table without starting a server.
func Router(a *app.Application) (*router.Router, error) {
	r := router.New()

	// Outermost first:
	//  1. metrics     whole-request latency
	//  2. request id  before anything logs
	//  3. logger      request-scoped logger carrying the id
	//  4. recovery    panics become 500 {"error": ...}
	//  5. cors
	//  6. rate limit  off unless RATE_LIMIT_PER_MINUTE > 0
	//  7. body cap
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(config.RateLimitPerMinute(), time.Minute))
	r.Use(middleware.MaxBodyBytes(int64(config.Int("MAX_BODY_BYTES", defaultMaxBodyBytes))))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	if err := routes.RegisterAPI(r, a); err != nil {
		return nil, err
	}
	return r, nil
}

// Handler returns the ready-to-serve http.Handler.
func Handler(a *app.Application) (http.Handler, error) {
	r, err := Router(a)
	if err != nil {
		return nil, err
	}
	return r.Handler(), nil
}
