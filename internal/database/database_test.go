package database

import (
	"errors"
	"testing"

	"github.com/themizzi/shopcheck/internal/config"
)

func TestConnect_NotConfigured(t *testing.T) {
	err := Connect(func(string) string { return "" })

	if !errors.Is(err, config.ErrPostgresNotConfigured) {
		t.Errorf("Connect() error = %v, want %v", err, config.ErrPostgresNotConfigured)
	}
	if DB != nil {
		t.Error("DB should stay nil")
	}
}

func TestRunMigrations_WithoutConnection(t *testing.T) {
	if err := RunMigrations(); err == nil {
		t.Error("Expected error without a connection")
	}
}

func TestClose_WithoutConnection(t *testing.T) {
	if err := Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
