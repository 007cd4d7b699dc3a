// Package session owns the browser process for a test run and hands out
// isolated browser contexts, one per test.
package session

import (
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/themizzi/shopcheck/internal/config"
)

// Provider is the process-wide browser. It is created once by TestMain and
// shared read-only by every test in the package.
type Provider struct {
	cfg     *config.SuiteConfig
	logger  *zap.Logger
	pw      *playwright.Playwright
	browser playwright.Browser
}

// Acquire starts the playwright driver and launches the engine named by
// cfg.Browser. Nothing is left running when it fails.
func Acquire(cfg *config.SuiteConfig, logger *zap.Logger) (*Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browserType, err := engine(pw, cfg.Browser)
	if err != nil {
		_ = pw.Stop()
		return nil, err
	}

	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", cfg.Browser, err)
	}

	logger.Info("browser launched",
		zap.String("engine", cfg.Browser),
		zap.Bool("headless", cfg.Headless),
		zap.String("version", browser.Version()),
	)

	return &Provider{cfg: cfg, logger: logger, pw: pw, browser: browser}, nil
}

// Install downloads the playwright driver and the configured engine
func Install(cfg *config.SuiteConfig) error {
	if _, err := engineName(cfg.Browser); err != nil {
		return err
	}
	return playwright.Install(&playwright.RunOptions{Browsers: []string{cfg.Browser}})
}

func engineName(name string) (string, error) {
	switch name {
	case config.EngineChromium, config.EngineFirefox, config.EngineWebKit:
		return name, nil
	}
	return "", fmt.Errorf("%w: %q", config.ErrUnknownEngine, name)
}

// engine selects the browser type for name
func engine(pw *playwright.Playwright, name string) (playwright.BrowserType, error) {
	if _, err := engineName(name); err != nil {
		return nil, err
	}
	switch name {
	case config.EngineFirefox:
		return pw.Firefox, nil
	case config.EngineWebKit:
		return pw.WebKit, nil
	default:
		return pw.Chromium, nil
	}
}

// Config returns the configuration the provider was acquired with
func (p *Provider) Config() *config.SuiteConfig {
	return p.cfg
}

// Logger returns the provider's logger
func (p *Provider) Logger() *zap.Logger {
	return p.logger
}

// Close shuts the browser and then the driver. It is safe to call on a
// partially acquired provider.
func (p *Provider) Close() error {
	var errs []error
	if p.browser != nil {
		if err := p.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close browser: %w", err))
		}
	}
	if p.pw != nil {
		if err := p.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop playwright: %w", err))
		}
	}
	p.logger.Info("browser closed")
	return errors.Join(errs...)
}
