package pages

import (
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

var (
	// ErrTimeout is returned when a bounded wait for a page condition expires
	ErrTimeout = errors.New("timed out waiting for page")
	// ErrVerification marks a page condition that was checked and found false
	ErrVerification = errors.New("page verification failed")
)

// wrap annotates err with the action that produced it. Driver timeouts are
// additionally marked with ErrTimeout.
func wrap(action string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%s: %w: %w", action, ErrTimeout, err)
	}
	return fmt.Errorf("%s: %w", action, err)
}
