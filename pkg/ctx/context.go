// Package ctx provides a single request context for produtos handlers.
//
// Handlers receive one *Context instead of (w, r):
//
//	func (pc *ProductController) Show(c *ctx.Context) {
//	    id := c.Param("id")
//	    c.JSON(http.StatusOK, product)
//	}
//
//	router.Get("/produtos/{id}", "produtos.show", ctx.Wrap(pc.Show))
package ctx

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/lojas7/produtos/pkg/bind"
	"github.com/lojas7/produtos/pkg/logger"
	"github.com/lojas7/produtos/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair.
type Context struct {
	W http.ResponseWriter
	R *http.Request
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter (e.g. "/produtos/{id}" → c.Param("id")).
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// Query returns a query-string value. Returns "" if not present.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Logger returns the request-scoped logger.
func (c *Context) Logger() *slog.Logger { return logger.WithCtx(c.R.Context()) }

// ─── Binding / Validation ─────────────────────────────────────────────────────

// BindJSON decodes the JSON body into dest and runs validation. Any failure
// sends a 400 {"error": ...} and returns false.
//
//	var input OrderRequest
//	if !c.BindJSON(&input) {
//	    return // response already sent
//	}
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	return true
}

// BindQuery validates a struct already populated from the query string and
// sends a 400 when a rule fails.
func (c *Context) BindQuery(v any) bool {
	if errs := validate.Struct(v); validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	return true
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// JSON writes a JSON response with the given status code.
func (c *Context) JSON(code int, v any) {
	c.W.Header().Set("Content-Type", "application/json")
	c.W.WriteHeader(code)
	json.NewEncoder(c.W).Encode(v) //nolint:errcheck
}

// Success sends v with a 200.
func (c *Context) Success(v any) {
	c.JSON(http.StatusOK, v)
}

// Message sends {"message": msg}.
func (c *Context) Message(code int, msg string) {
	c.JSON(code, map[string]string{"message": msg})
}

// Error sends {"error": msg}.
func (c *Context) Error(code int, msg string) {
	c.JSON(code, map[string]string{"error": msg})
}

// ValidationError sends a 400 with the first failing rule as "error" and
// every field message under "errors".
func (c *Context) ValidationError(errs map[string]string) {
	first := "Validation failed"
	for _, msg := range errs {
		first = msg
		break
	}
	c.JSON(http.StatusBadRequest, map[string]any{"error": first, "errors": errs})
}
