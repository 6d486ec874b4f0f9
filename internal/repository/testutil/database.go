// Package testutil gives integration tests a throwaway postgres schema.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/adyen/shopsuite/internal/config"
	"github.com/adyen/shopsuite/internal/database"
)

// Local defaults, matching a stock postgres container
var defaults = map[string]string{
	"POSTGRES_USER":     "postgres",
	"POSTGRES_PASSWORD": "postgres",
	"POSTGRES_DB":       "postgres",
	"POSTGRES_HOSTNAME": "localhost",
}

// TestDatabase is a connection whose search_path points at a schema only
// this test uses
type TestDatabase struct {
	DB         *sql.DB
	SchemaName string
	admin      *sql.DB
}

// SetupTestDatabase creates a fresh schema, migrates the fixture tables into
// it and drops it when the test ends. The test is skipped when postgres is
// not reachable.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()
	ctx := context.Background()

	cfg, err := config.LoadPostgresConfig(func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return defaults[key]
	})
	if err != nil {
		t.Fatalf("load postgres config: %v", err)
	}
	cfg.Schema = ""

	admin, err := database.Connect(ctx, cfg)
	if err != nil {
		t.Skipf("postgres not reachable: %v", err)
	}

	td := &TestDatabase{
		SchemaName: "fixtures_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16],
		admin:      admin,
	}
	if _, err := admin.ExecContext(ctx, fmt.Sprintf("CREATE SCHEMA %s", td.SchemaName)); err != nil {
		admin.Close()
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() { td.drop(t) })

	scoped := *cfg
	scoped.Schema = td.SchemaName
	if td.DB, err = database.Connect(ctx, &scoped); err != nil {
		t.Fatalf("connect to %s: %v", td.SchemaName, err)
	}
	if err := database.RunMigrations(ctx, td.DB); err != nil {
		t.Fatalf("migrate %s: %v", td.SchemaName, err)
	}
	return td
}

func (td *TestDatabase) drop(t *testing.T) {
	if td.DB != nil {
		td.DB.Close()
	}
	if _, err := td.admin.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", td.SchemaName)); err != nil {
		t.Logf("drop schema %s: %v", td.SchemaName, err)
	}
	td.admin.Close()
}
