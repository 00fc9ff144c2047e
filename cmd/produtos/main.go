package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lojas7/produtos/config"
	"github.com/lojas7/produtos/pkg/logger"
)

func main() {
	defer closeLogSink()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		closeLogSink()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "produtos",
	Short:         "produtos: catalog cache-and-forward service",
	Long:          "produtos reads the upstream product catalog through a local cache and forwards orders built from cached products.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		setupLogging()
		return nil
	},
}

var mongoSink *logger.MongoHandler

// setupLogging fans logs out to MongoDB when LOG_MONGO_URI is set. A sink
// that cannot connect is reported and skipped.
func setupLogging() {
	uri := config.LogMongoURI()
	if uri == "" {
		logger.Setup(config.AppEnv())
		return
	}

	h, err := logger.NewMongoHandler(uri, config.LogMongoDB(), config.LogMongoCollection(), slog.LevelInfo)
	if err != nil {
		logger.Setup(config.AppEnv())
		logger.Warn("mongo log sink disabled", "error", err)
		return
	}
	mongoSink = h
	logger.Setup(config.AppEnv(), h)
}

func closeLogSink() {
	if mongoSink != nil {
		mongoSink.Close()
		mongoSink = nil
	}
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	// Workers
	rootCmd.AddCommand(scheduleRunCmd)
}
