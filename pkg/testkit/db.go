package testkit

import (
	"io"
	"strings"
	"testing"

	"gorm.io/gorm"

	_ "github.com/lojas7/produtos/database/migrations" // register migrations
	"github.com/lojas7/produtos/pkg/database"
	"github.com/lojas7/produtos/pkg/migration"
)

// OpenDB returns a migrated in-memory sqlite database private to t.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("testkit: open db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := migration.New(db).WithOutput(io.Discard).Run(); err != nil {
		t.Fatalf("testkit: migrate: %v", err)
	}
	return db
}
