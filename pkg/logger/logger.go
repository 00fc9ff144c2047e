// Package logger provides a structured, levelled logger built on log/slog.
//
// WithCtx returns the request-scoped logger injected by the Logger
// middleware, so every line written while serving a request carries its
// request_id:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order forwarded", "product_ids", ids)
//	// → time=... level=INFO msg="order forwarded" request_id=a1b2c3d4 product_ids=[5]
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/lojas7/produtos/config"
)

var L *slog.Logger

func init() {
	L = slog.New(newConsoleHandler(os.Stdout, config.AppEnv()))
	slog.SetDefault(L)
}

func newConsoleHandler(w io.Writer, env string) slog.Handler {
	switch env {
	case "production", "prod":
		// structured JSON for log aggregators
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}

// Setup rebuilds the base logger for env and fans records out to any extra
// handlers (e.g. a MongoHandler). Call once at boot, after config.Load.
func Setup(env string, extra ...slog.Handler) {
	var h slog.Handler = newConsoleHandler(os.Stdout, env)
	if len(extra) > 0 {
		h = fanout(append([]slog.Handler{h}, extra...))
	}
	L = slog.New(h)
	slog.SetDefault(L)
}

// ─────────────────────────────────────────────
// Context-aware logger
// ─────────────────────────────────────────────

type ctxKey struct{}

// WithCtx returns the *slog.Logger stored in ctx by InjectLogger, or the base
// logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return L
	}
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
// Called by the Logger middleware; application code rarely needs it.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// ─────────────────────────────────────────────
// Short-hand helpers (use base logger)
// ─────────────────────────────────────────────

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }

// ─────────────────────────────────────────────
// Fan-out handler
// ─────────────────────────────────────────────

type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
