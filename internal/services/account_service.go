package services

import (
	"fmt"

	"github.com/themizzi/shopcheck/internal/models"
)

// AccountRepository defines the interface for account persistence
type AccountRepository interface {
	CreateAccount(account *models.Account) error
	GetAccountByEmail(email string) (*models.Account, error)
	UpdateAccount(account *models.Account) error
	DeleteAccount(email string) error
}

// AccountService handles account business logic
type AccountService interface {
	CreateAccount(details models.Account, password string) (*models.Account, error)
	VerifyLogin(email, password string) (*models.Account, error)
	UpdateAccount(email, password string, update models.Account) (*models.Account, error)
	DeleteAccount(email, password string) error
	CloseAccount(email string) error
	GetAccountByEmail(email string) (*models.Account, error)
}

// AccountServiceImpl implements AccountService
type AccountServiceImpl struct {
	accountRepo AccountRepository
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo AccountRepository) AccountService {
	return &AccountServiceImpl{
		accountRepo: accountRepo,
	}
}

// CreateAccount validates details, hashes password and stores the account
func (s *AccountServiceImpl) CreateAccount(details models.Account, password string) (*models.Account, error) {
	account, err := models.NewAccount(details, password)
	if err != nil {
		return nil, fmt.Errorf("invalid account: %w", err)
	}

	if err := s.accountRepo.CreateAccount(account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// VerifyLogin returns the account when email and password match. Unknown
// emails give models.ErrAccountNotFound, wrong passwords
// models.ErrWrongPassword.
func (s *AccountServiceImpl) VerifyLogin(email, password string) (*models.Account, error) {
	account, err := s.GetAccountByEmail(email)
	if err != nil {
		return nil, err
	}
	if err := account.CheckPassword(password); err != nil {
		return nil, err
	}
	return account, nil
}

// UpdateAccount applies update's non-empty profile fields to the account
// identified by email and password
func (s *AccountServiceImpl) UpdateAccount(email, password string, update models.Account) (*models.Account, error) {
	account, err := s.VerifyLogin(email, password)
	if err != nil {
		return nil, err
	}

	account.ApplyProfile(update)
	if err := s.accountRepo.UpdateAccount(account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return account, nil
}

// DeleteAccount removes the account identified by email and password
func (s *AccountServiceImpl) DeleteAccount(email, password string) error {
	account, err := s.VerifyLogin(email, password)
	if err != nil {
		return err
	}

	if err := s.accountRepo.DeleteAccount(account.Email); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	return nil
}

// CloseAccount removes the account of an already authenticated session
func (s *AccountServiceImpl) CloseAccount(email string) error {
	if err := s.accountRepo.DeleteAccount(models.NormalizeEmail(email)); err != nil {
		return fmt.Errorf("failed to close account: %w", err)
	}
	return nil
}

// GetAccountByEmail retrieves an account by its email
func (s *AccountServiceImpl) GetAccountByEmail(email string) (*models.Account, error) {
	account, err := s.accountRepo.GetAccountByEmail(models.NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}
