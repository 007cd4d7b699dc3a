package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/themizzi/shopcheck/internal/models"
)

// MemoryAccountRepository keeps accounts in process memory. It is the
// stand-in's storage when no database is configured.
type MemoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]models.Account
	nextID   int
}

// NewMemoryAccountRepository creates an empty in-memory repository
func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{
		accounts: make(map[string]models.Account),
		nextID:   1,
	}
}

// CreateAccount stores account and sets its ID and timestamps
func (r *MemoryAccountRepository) CreateAccount(account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.Email]; ok {
		return fmt.Errorf("%w: %s", models.ErrAccountExists, account.Email)
	}

	now := time.Now()
	account.ID = r.nextID
	account.CreatedAt = now
	account.UpdatedAt = now
	r.nextID++
	r.accounts[account.Email] = *account
	return nil
}

// GetAccountByEmail returns a copy of the account with email
func (r *MemoryAccountRepository) GetAccountByEmail(email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[email]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrAccountNotFound, email)
	}
	return &account, nil
}

// UpdateAccount replaces the stored account with the same email
func (r *MemoryAccountRepository) UpdateAccount(account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.accounts[account.Email]
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrAccountNotFound, account.Email)
	}
	updated := *account
	updated.ID = stored.ID
	updated.PasswordHash = stored.PasswordHash
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now()
	r.accounts[account.Email] = updated
	return nil
}

// DeleteAccount removes the account with email
func (r *MemoryAccountRepository) DeleteAccount(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[email]; !ok {
		return fmt.Errorf("%w: %s", models.ErrAccountNotFound, email)
	}
	delete(r.accounts, email)
	return nil
}

// Count returns the number of stored accounts
func (r *MemoryAccountRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts)
}
