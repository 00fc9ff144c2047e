// Package middleware provides the HTTP middleware stack of the produtos API.
package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/lojas7/produtos/pkg/response"
)

type client struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// limiter keeps one token bucket per client key. Buckets idle for longer
// than the window are dropped on the next sweep.
type limiter struct {
	mu        sync.Mutex
	every     rate.Limit
	burst     int
	window    time.Duration
	clients   map[string]*client
	lastSweep time.Time
	now       func() time.Time
}

func newLimiter(max int, window time.Duration) *limiter {
	return &limiter{
		every:   rate.Limit(float64(max) / window.Seconds()),
		burst:   max,
		window:  window,
		clients: map[string]*client{},
		now:     time.Now,
	}
}

func (l *limiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > l.window {
		for k, c := range l.clients {
			if now.Sub(c.lastSeen) > l.window {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[key]
	if !ok {
		c = &client{lim: rate.NewLimiter(l.every, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.lim.AllowN(now, 1)
}

// RateLimit allows each client IP a burst of max requests, refilled at
// max per window. max <= 0 disables limiting.
//
//	r.Use(middleware.RateLimit(600, time.Minute))
func RateLimit(max int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if max <= 0 || window <= 0 {
			return next
		}
		l := newLimiter(max, window)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(clientIP(r)) {
				response.Error(w, http.StatusTooManyRequests, "Too Many Requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
