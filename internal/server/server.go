// Package server runs the produtos processes until ctx is cancelled: the
// HTTP API, the optional gRPC health server and the optional catalog
// refresh schedule.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lojas7/produtos/config"
	"github.com/lojas7/produtos/internal/kernel"
	"github.com/lojas7/produtos/pkg/app"
	"github.com/lojas7/produtos/pkg/grpc"
	"github.com/lojas7/produtos/pkg/logger"
	"github.com/lojas7/produtos/pkg/schedule"
)

const shutdownTimeout = 15 * time.Second

// Start serves until ctx is done or one component fails, then drains
// in-flight requests and stops everything else.
func Start(ctx context.Context, a *app.Application) error {
	handler, err := kernel.Handler(a)
	if err != nil {
		return fmt.Errorf("server: build handler: %w", err)
	}

	lis, err := net.Listen("tcp", ":"+config.AppPort())
	if err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}
	return Serve(ctx, a, handler, lis)
}

// Serve is Start with the HTTP handler and listener supplied by the caller.
func Serve(ctx context.Context, a *app.Application, handler http.Handler, lis net.Listener) error {
	var glis net.Listener
	if port := config.GRPCPort(); port != "" {
		var err error
		if glis, err = grpc.Listen(port); err != nil {
			_ = lis.Close()
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * config.HTTPClientTimeout(),
		IdleTimeout:       120 * time.Second,
	}

	g.Go(func() error {
		logger.Info("HTTP server listening", "addr", lis.Addr().String())
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if glis != nil {
		gsrv := grpc.NewServer(a.Ping)
		g.Go(func() error {
			logger.Info("gRPC server listening", "addr", glis.Addr().String())
			return gsrv.Serve(glis)
		})
		g.Go(func() error {
			<-gctx.Done()
			grpc.Stop(gsrv)
			return nil
		})
	}

	if every := config.CatalogRefreshInterval(); every > 0 {
		s := RefreshScheduler(a, every)
		g.Go(func() error { return s.Start(gctx) })
	}

	return g.Wait()
}

// RefreshScheduler copies the full catalog into the cache store every
// interval. Runs never overlap.
func RefreshScheduler(a *app.Application, every time.Duration) *schedule.Scheduler {
	s := schedule.New()
	s.Every(every).Name("catalog.refresh").WithoutOverlapping().Run(func(ctx context.Context) {
		if _, err := a.Products.Refresh(ctx); err != nil {
			logger.WithCtx(ctx).Warn("catalog refresh failed", "error", err)
		}
	})
	return s
}
