package config

import (
	"errors"
	"fmt"
)

// ErrPostgresNotConfigured signals that no database was requested; callers
// fall back to in-memory storage
var ErrPostgresNotConfigured = errors.New("postgres not configured")

// PostgresConfig holds configuration for the stand-in's account database
type PostgresConfig struct {
	User     string
	Password string
	Database string
	Host     string
	SSLMode  string
}

// LoadPostgresConfig loads PostgreSQL configuration from environment variables.
// It returns ErrPostgresNotConfigured when POSTGRES_HOSTNAME is unset.
func LoadPostgresConfig(getenv func(string) string) (*PostgresConfig, error) {
	config := &PostgresConfig{
		User:     getenv("POSTGRES_USER"),
		Password: getenv("POSTGRES_PASSWORD"),
		Database: getenv("POSTGRES_DB"),
		Host:     getenv("POSTGRES_HOSTNAME"),
		SSLMode:  getenv("POSTGRES_SSLMODE"),
	}

	if config.Host == "" {
		return nil, ErrPostgresNotConfigured
	}

	// Validate required fields
	if config.User == "" {
		return nil, fmt.Errorf("POSTGRES_USER is required")
	}
	if config.Password == "" {
		return nil, fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if config.Database == "" {
		return nil, fmt.Errorf("POSTGRES_DB is required")
	}
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	return config, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *PostgresConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Database, c.SSLMode)
}
