// Package testutil provisions throwaway Postgres schemas for repository
// integration tests.
package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/themizzi/shopcheck/internal/config"
	"github.com/themizzi/shopcheck/internal/database"
)

// TestDatabase is a schema private to one test, migrated and dropped again
// when the test ends
type TestDatabase struct {
	DB         *sql.DB
	SchemaName string
	masterDB   *sql.DB
}

// defaults fill in the variables a local docker Postgres usually has
var defaults = map[string]string{
	"POSTGRES_USER":     "postgres",
	"POSTGRES_PASSWORD": "postgres",
	"POSTGRES_DB":       "postgres",
	"POSTGRES_HOSTNAME": "localhost",
}

func getenv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaults[key]
}

// SetupTestDatabase creates an isolated schema for t and drops it in t's
// cleanup
func SetupTestDatabase(t testing.TB) *TestDatabase {
	t.Helper()

	connConfig, err := config.LoadPostgresConfig(getenv)
	if err != nil {
		t.Fatalf("Failed to load postgres config: %v", err)
	}
	masterConnStr := connConfig.ConnectionString()

	masterDB, err := database.Open(masterConnStr)
	if err != nil {
		t.Fatalf("Failed to connect to master database: %v", err)
	}

	schemaName := "test_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	if _, err := masterDB.Exec(fmt.Sprintf("CREATE SCHEMA %s", schemaName)); err != nil {
		masterDB.Close()
		t.Fatalf("Failed to create test schema: %v", err)
	}

	td := &TestDatabase{SchemaName: schemaName, masterDB: masterDB}
	t.Cleanup(func() { td.Teardown(t) })

	// Same database, with search_path pinned to the test schema
	td.DB, err = database.Open(fmt.Sprintf("%s search_path=%s", masterConnStr, schemaName))
	if err != nil {
		t.Fatalf("Failed to connect to test schema: %v", err)
	}
	td.DB.SetMaxOpenConns(5)
	td.DB.SetMaxIdleConns(2)

	if err := database.Migrate(td.DB); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return td
}

// Teardown closes the pools and drops the schema. It runs once even when
// called again.
func (td *TestDatabase) Teardown(t testing.TB) {
	t.Helper()

	if td.DB != nil {
		td.DB.Close()
		td.DB = nil
	}

	if td.masterDB != nil {
		if _, err := td.masterDB.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", td.SchemaName)); err != nil {
			t.Logf("Warning: Failed to drop test schema %s: %v", td.SchemaName, err)
		}
		td.masterDB.Close()
		td.masterDB = nil
	}
}
