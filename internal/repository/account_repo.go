package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/themizzi/shopcheck/internal/database"
	"github.com/themizzi/shopcheck/internal/models"
)

// uniqueViolation is the Postgres error code for a duplicate key
const uniqueViolation = "23505"

const accountColumns = `id, email, name, password_hash, title, birth_day, birth_month, birth_year,
	first_name, last_name, company, address1, address2, country, state, city, zipcode,
	mobile_number, created_at, updated_at`

// AccountRepository handles database operations for accounts
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new account repository on database.DB
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		db: database.DB,
	}
}

// NewAccountRepositoryWithDB creates a new account repository with a specific database connection
func NewAccountRepositoryWithDB(db *sql.DB) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

// CreateAccount inserts account and sets its ID and timestamps
func (r *AccountRepository) CreateAccount(account *models.Account) error {
	query := `
		INSERT INTO accounts (email, name, password_hash, title, birth_day, birth_month, birth_year,
			first_name, last_name, company, address1, address2, country, state, city, zipcode,
			mobile_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $18)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRow(query,
		account.Email,
		account.Name,
		account.PasswordHash,
		account.Title,
		account.BirthDay,
		account.BirthMonth,
		account.BirthYear,
		account.FirstName,
		account.LastName,
		account.Company,
		account.Address1,
		account.Address2,
		account.Country,
		account.State,
		account.City,
		account.Zipcode,
		account.MobileNumber,
		now,
	).Scan(&account.ID)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", models.ErrAccountExists, account.Email)
	}
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	account.CreatedAt = now
	account.UpdatedAt = now

	return nil
}

// GetAccountByEmail retrieves an account by its email
func (r *AccountRepository) GetAccountByEmail(email string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	account := &models.Account{}
	err := r.db.QueryRow(query, email).Scan(
		&account.ID,
		&account.Email,
		&account.Name,
		&account.PasswordHash,
		&account.Title,
		&account.BirthDay,
		&account.BirthMonth,
		&account.BirthYear,
		&account.FirstName,
		&account.LastName,
		&account.Company,
		&account.Address1,
		&account.Address2,
		&account.Country,
		&account.State,
		&account.City,
		&account.Zipcode,
		&account.MobileNumber,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", models.ErrAccountNotFound, email)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}

// UpdateAccount writes the profile fields of account
func (r *AccountRepository) UpdateAccount(account *models.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, title = $2, birth_day = $3, birth_month = $4, birth_year = $5,
			first_name = $6, last_name = $7, company = $8, address1 = $9, address2 = $10,
			country = $11, state = $12, city = $13, zipcode = $14, mobile_number = $15,
			updated_at = $16
		WHERE email = $17
	`

	result, err := r.db.Exec(query,
		account.Name,
		account.Title,
		account.BirthDay,
		account.BirthMonth,
		account.BirthYear,
		account.FirstName,
		account.LastName,
		account.Company,
		account.Address1,
		account.Address2,
		account.Country,
		account.State,
		account.City,
		account.Zipcode,
		account.MobileNumber,
		time.Now(),
		account.Email,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	return checkAffected(result, account.Email)
}

// DeleteAccount removes the account with email
func (r *AccountRepository) DeleteAccount(email string) error {
	result, err := r.db.Exec(`DELETE FROM accounts WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	return checkAffected(result, email)
}

func checkAffected(result sql.Result, email string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", models.ErrAccountNotFound, email)
	}

	return nil
}
