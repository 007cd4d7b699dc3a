package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Supported browser engines
const (
	EngineChromium = "chromium"
	EngineFirefox  = "firefox"
	EngineWebKit   = "webkit"
)

// Defaults applied when the corresponding variable is unset
const (
	DefaultBaseURL        = "https://automationexercise.com"
	DefaultAPIBaseURL     = "https://automationexercise.com/api"
	DefaultBrowser        = EngineChromium
	DefaultTimeoutMillis  = 30000
	DefaultViewportWidth  = 1920
	DefaultViewportHeight = 1080
	DefaultResultsDir     = "results"
)

// ErrUnknownEngine is returned when BROWSER names an engine playwright does not ship
var ErrUnknownEngine = errors.New("unknown browser engine")

// SuiteConfig holds everything the test suite reads from the environment.
// It is built once at process start and passed by pointer to the session
// provider and the API clients.
type SuiteConfig struct {
	BaseURL        string
	APIBaseURL     string
	Headless       bool
	Browser        string
	Timeout        time.Duration
	ViewportWidth  int
	ViewportHeight int
	RecordVideo    bool
	ResultsDir     string
}

// LoadSuiteConfig loads the suite configuration from environment variables
func LoadSuiteConfig(getenv func(string) string) (*SuiteConfig, error) {
	config := &SuiteConfig{
		BaseURL:    strings.TrimRight(valueOr(getenv("BASE_URL"), DefaultBaseURL), "/"),
		APIBaseURL: strings.TrimRight(valueOr(getenv("API_BASE_URL"), DefaultAPIBaseURL), "/"),
		Browser:    strings.ToLower(valueOr(getenv("BROWSER"), DefaultBrowser)),
		ResultsDir: valueOr(getenv("RESULTS_DIR"), DefaultResultsDir),
	}

	var err error
	if config.Headless, err = parseBool("HEADLESS", getenv("HEADLESS"), true); err != nil {
		return nil, err
	}
	if config.RecordVideo, err = parseBool("RECORD_VIDEO", getenv("RECORD_VIDEO"), false); err != nil {
		return nil, err
	}

	timeoutMillis, err := parseInt("TIMEOUT", getenv("TIMEOUT"), DefaultTimeoutMillis)
	if err != nil {
		return nil, err
	}
	config.Timeout = time.Duration(timeoutMillis) * time.Millisecond

	if config.ViewportWidth, err = parseInt("VIEWPORT_WIDTH", getenv("VIEWPORT_WIDTH"), DefaultViewportWidth); err != nil {
		return nil, err
	}
	if config.ViewportHeight, err = parseInt("VIEWPORT_HEIGHT", getenv("VIEWPORT_HEIGHT"), DefaultViewportHeight); err != nil {
		return nil, err
	}

	// Validate engine selection
	switch config.Browser {
	case EngineChromium, EngineFirefox, EngineWebKit:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, config.Browser)
	}

	return config, nil
}

// TimeoutMillis returns the default timeout in the unit playwright expects
func (c *SuiteConfig) TimeoutMillis() float64 {
	return float64(c.Timeout.Milliseconds())
}

// VideoDir returns the directory video recordings are written to
func (c *SuiteConfig) VideoDir() string {
	return filepath.Join(c.ResultsDir, "videos")
}

// ScreenshotDir returns the directory failure screenshots are written to
func (c *SuiteConfig) ScreenshotDir() string {
	return filepath.Join(c.ResultsDir, "screenshots")
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func parseBool(key, value string, fallback bool) (bool, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(value)))
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

func parseInt(key, value string, fallback int) (int, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, n)
	}
	return n, nil
}
