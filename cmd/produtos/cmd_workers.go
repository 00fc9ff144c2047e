package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lojas7/produtos/config"
	"github.com/lojas7/produtos/internal/server"
	"github.com/lojas7/produtos/pkg/app"
)

var refreshEveryFlag time.Duration

// produtos schedule:run: refresh the cache store without serving HTTP.
var scheduleRunCmd = &cobra.Command{
	Use:   "schedule:run",
	Short: "Run the catalog refresh schedule in the foreground",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		every := refreshEveryFlag
		if every <= 0 {
			every = config.CatalogRefreshInterval()
		}
		if every <= 0 {
			return fmt.Errorf("schedule:run: set --every or CATALOG_REFRESH_INTERVAL")
		}

		a, err := app.Boot(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Printf("Catalog refresh every %s. Press Ctrl+C to stop.\n", every)
		return server.RefreshScheduler(a, every).Start(ctx)
	},
}

func init() {
	scheduleRunCmd.Flags().DurationVar(&refreshEveryFlag, "every", 0, "refresh interval (overrides CATALOG_REFRESH_INTERVAL)")
}
