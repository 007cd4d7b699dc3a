package database

import (
	"database/sql"
	"fmt"
)

// Schema creates the accounts table used by the stand-in
const Schema = `
	CREATE TABLE IF NOT EXISTS accounts (
		id SERIAL PRIMARY KEY,
		email VARCHAR(254) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		title VARCHAR(16) NOT NULL DEFAULT '',
		birth_day VARCHAR(8) NOT NULL DEFAULT '',
		birth_month VARCHAR(16) NOT NULL DEFAULT '',
		birth_year VARCHAR(8) NOT NULL DEFAULT '',
		first_name VARCHAR(255) NOT NULL DEFAULT '',
		last_name VARCHAR(255) NOT NULL DEFAULT '',
		company VARCHAR(255) NOT NULL DEFAULT '',
		address1 VARCHAR(255) NOT NULL DEFAULT '',
		address2 VARCHAR(255) NOT NULL DEFAULT '',
		country VARCHAR(255) NOT NULL DEFAULT '',
		state VARCHAR(255) NOT NULL DEFAULT '',
		city VARCHAR(255) NOT NULL DEFAULT '',
		zipcode VARCHAR(32) NOT NULL DEFAULT '',
		mobile_number VARCHAR(32) NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_accounts_email ON accounts(email);
	`

// RunMigrations creates the necessary database tables
func RunMigrations() error {
	if DB == nil {
		return fmt.Errorf("database connection not initialized")
	}
	return Migrate(DB)
}

// Migrate applies Schema to db
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create accounts table: %w", err)
	}
	return nil
}
