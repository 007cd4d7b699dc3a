package repository

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/themizzi/shopcheck/internal/models"
)

func TestMemoryAccountRepository_CreateAndGet(t *testing.T) {
	// GIVEN
	repo := NewMemoryAccountRepository()
	account := &models.Account{Email: "user@example.com", Name: "Test User", PasswordHash: "hash"}

	// WHEN
	err := repo.CreateAccount(account)

	// THEN
	if err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}
	if account.ID != 1 {
		t.Errorf("Expected ID 1, got %d", account.ID)
	}
	if account.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	got, err := repo.GetAccountByEmail("user@example.com")
	if err != nil {
		t.Fatalf("GetAccountByEmail() error = %v", err)
	}
	if got.Name != "Test User" {
		t.Errorf("Expected name 'Test User', got %q", got.Name)
	}

	got.Name = "Changed"
	again, _ := repo.GetAccountByEmail("user@example.com")
	if again.Name != "Test User" {
		t.Error("Returned account should be a copy")
	}
}

func TestMemoryAccountRepository_Errors(t *testing.T) {
	repo := NewMemoryAccountRepository()
	_ = repo.CreateAccount(&models.Account{Email: "user@example.com", Name: "Test User"})

	tests := []struct {
		name    string
		op      func() error
		wantErr error
	}{
		{
			name:    "duplicate email",
			op:      func() error { return repo.CreateAccount(&models.Account{Email: "user@example.com"}) },
			wantErr: models.ErrAccountExists,
		},
		{
			name: "get missing",
			op: func() error {
				_, err := repo.GetAccountByEmail("missing@example.com")
				return err
			},
			wantErr: models.ErrAccountNotFound,
		},
		{
			name:    "update missing",
			op:      func() error { return repo.UpdateAccount(&models.Account{Email: "missing@example.com"}) },
			wantErr: models.ErrAccountNotFound,
		},
		{
			name:    "delete missing",
			op:      func() error { return repo.DeleteAccount("missing@example.com") },
			wantErr: models.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.op(); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMemoryAccountRepository_UpdateKeepsIdentity(t *testing.T) {
	repo := NewMemoryAccountRepository()
	original := &models.Account{Email: "user@example.com", Name: "Old", PasswordHash: "hash"}
	_ = repo.CreateAccount(original)

	err := repo.UpdateAccount(&models.Account{Email: "user@example.com", Name: "New", City: "Lyon"})
	if err != nil {
		t.Fatalf("UpdateAccount() error = %v", err)
	}

	got, _ := repo.GetAccountByEmail("user@example.com")
	if got.Name != "New" || got.City != "Lyon" {
		t.Errorf("update not stored: %+v", got)
	}
	if got.ID != original.ID || got.PasswordHash != "hash" {
		t.Error("update must keep ID and password hash")
	}
}

func TestMemoryAccountRepository_Delete(t *testing.T) {
	repo := NewMemoryAccountRepository()
	_ = repo.CreateAccount(&models.Account{Email: "user@example.com"})

	if err := repo.DeleteAccount("user@example.com"); err != nil {
		t.Fatalf("DeleteAccount() error = %v", err)
	}
	if repo.Count() != 0 {
		t.Errorf("Expected empty repository, got %d", repo.Count())
	}
}

func TestMemoryAccountRepository_ConcurrentCreates(t *testing.T) {
	repo := NewMemoryAccountRepository()

	const numAccounts = 20
	var wg sync.WaitGroup
	for i := 0; i < numAccounts; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if err := repo.CreateAccount(&models.Account{Email: fmt.Sprintf("user%d@example.com", idx)}); err != nil {
				t.Errorf("Concurrent create failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if repo.Count() != numAccounts {
		t.Errorf("Expected %d accounts, got %d", numAccounts, repo.Count())
	}
}
