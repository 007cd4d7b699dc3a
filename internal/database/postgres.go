package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/themizzi/shopcheck/internal/config"
)

// DB is the stand-in's shared connection pool. It stays nil when the
// stand-in runs on in-memory storage.
var DB *sql.DB

// Connect establishes a connection to the PostgreSQL database described by
// getenv. It returns config.ErrPostgresNotConfigured when no host is set.
func Connect(getenv func(string) string) error {
	pgConfig, err := config.LoadPostgresConfig(getenv)
	if err != nil {
		return fmt.Errorf("failed to load postgres config: %w", err)
	}

	db, err := Open(pgConfig.ConnectionString())
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// Open opens and pings a pool for connStr
func Open(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		err := DB.Close()
		DB = nil
		return err
	}
	return nil
}
