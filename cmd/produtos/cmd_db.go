package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	_ "github.com/lojas7/produtos/database/migrations"
	"github.com/lojas7/produtos/database/seeders"
	"github.com/lojas7/produtos/pkg/database"
	"github.com/lojas7/produtos/pkg/migration"
)

// withDB opens the configured database for the duration of fn.
func withDB(fn func(db *gorm.DB) error) error {
	db, err := database.Connect()
	if err != nil {
		return err
	}
	defer database.Close(db)
	return fn(db)
}

// produtos migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			fmt.Println("Running migrations…")
			return migration.New(db).Run()
		})
	},
}

// produtos migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			fmt.Println("Rolling back last batch…")
			return migration.New(db).Rollback()
		})
	},
}

// produtos migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			return migration.New(db).Status()
		})
	},
}

// produtos seed: warm the cache store from the upstream catalog.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders (copies the full catalog into the cache)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			if err := migration.New(db).Run(); err != nil {
				return err
			}
			fmt.Println("Running seeders…")
			return seeders.RunAll(context.Background(), db, os.Stdout)
		})
	},
}
