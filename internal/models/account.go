package models

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Account is a registered storefront customer
type Account struct {
	ID           int
	Name         string
	Email        string
	PasswordHash string
	Title        string
	BirthDay     string
	BirthMonth   string
	BirthYear    string
	FirstName    string
	LastName     string
	Company      string
	Address1     string
	Address2     string
	Country      string
	State        string
	City         string
	Zipcode      string
	MobileNumber string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Domain errors
var (
	ErrInvalidEmail    = errors.New("email address is not valid")
	ErrEmptyPassword   = errors.New("password cannot be empty")
	ErrEmptyUserName   = errors.New("name cannot be empty")
	ErrWrongPassword   = errors.New("password does not match")
	ErrAccountExists   = errors.New("account already exists")
	ErrAccountNotFound = errors.New("account not found")
)

// NewAccount creates an account with validation and a hashed password.
// Profile fields are copied from details.
func NewAccount(details Account, password string) (*Account, error) {
	details.Email = NormalizeEmail(details.Email)
	if err := validateAccountInput(details.Name, details.Email); err != nil {
		return nil, err
	}

	account := details
	if err := account.SetPassword(password); err != nil {
		return nil, err
	}

	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now
	return &account, nil
}

// validateAccountInput validates account creation parameters
func validateAccountInput(name, email string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyUserName
	}
	if _, err := mail.ParseAddress(email); err != nil || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return nil
}

// NormalizeEmail lower-cases and trims an address so lookups are
// case-insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetPassword hashes and stores plaintext
func (a *Account) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies plaintext against the stored hash
func (a *Account) CheckPassword(plaintext string) error {
	if a.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// ApplyProfile overwrites the profile fields with the non-empty fields of
// update. Email and password are left alone.
func (a *Account) ApplyProfile(update Account) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&a.Name, update.Name)
	set(&a.Title, update.Title)
	set(&a.BirthDay, update.BirthDay)
	set(&a.BirthMonth, update.BirthMonth)
	set(&a.BirthYear, update.BirthYear)
	set(&a.FirstName, update.FirstName)
	set(&a.LastName, update.LastName)
	set(&a.Company, update.Company)
	set(&a.Address1, update.Address1)
	set(&a.Address2, update.Address2)
	set(&a.Country, update.Country)
	set(&a.State, update.State)
	set(&a.City, update.City)
	set(&a.Zipcode, update.Zipcode)
	set(&a.MobileNumber, update.MobileNumber)
	a.UpdatedAt = time.Now()
}
