package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/themizzi/shopcheck/internal/api"
	"github.com/themizzi/shopcheck/internal/config"
	"github.com/themizzi/shopcheck/internal/pages"
)

// Fixture is everything one test needs: a private context, a tab in it and
// constructors for page objects and API controllers bound to both.
type Fixture struct {
	Context *Context
	Page    playwright.Page

	t      testing.TB
	cfg    *config.SuiteConfig
	logger *zap.Logger
}

// NewFixture opens a context and a page for t. The context is closed when t
// finishes; a failing test first gets a full-page screenshot.
func NewFixture(t testing.TB, p *Provider) *Fixture {
	t.Helper()

	ctx, err := p.OpenContext(ContextOptions{})
	require.NoError(t, err)

	f := &Fixture{
		Context: ctx,
		t:       t,
		cfg:     p.Config(),
		logger:  p.Logger().With(zap.String("test", t.Name())),
	}
	t.Cleanup(f.teardown)

	f.Page, err = ctx.NewPage()
	require.NoError(t, err)

	return f
}

func (f *Fixture) teardown() {
	if f.t.Failed() && f.Page != nil {
		f.captureFailure()
	}

	var video playwright.Video
	if f.Context.Recording() && f.Page != nil {
		video = f.Page.Video()
	}

	if err := f.Context.Close(); err != nil {
		f.logger.Warn("failed to close context", zap.Error(err))
	}

	if video != nil {
		if path, err := video.Path(); err == nil {
			f.logger.Info("video saved", zap.String("path", path))
		}
	}
}

func (f *Fixture) captureFailure() {
	path := ScreenshotPath(f.cfg.ScreenshotDir(), f.t.Name())
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		f.logger.Warn("failed to create screenshot dir", zap.Error(err))
		return
	}
	_, err := f.Page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		f.logger.Warn("failed to capture screenshot", zap.Error(err))
		return
	}
	f.logger.Info("screenshot saved", zap.String("path", path))
}

// ScreenshotPath returns where the failure screenshot of testName is written.
// Subtest separators and other unsafe characters become underscores.
func ScreenshotPath(dir, testName string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, testName)
	return filepath.Join(dir, safe+".png")
}

// Request returns the context's request channel
func (f *Fixture) Request() api.RequestChannel {
	return f.Context.Request()
}

// Config returns the suite configuration
func (f *Fixture) Config() *config.SuiteConfig {
	return f.cfg
}

// Logger returns a logger tagged with the test name
func (f *Fixture) Logger() *zap.Logger {
	return f.logger
}

// Home returns the landing page object
func (f *Fixture) Home() *pages.HomePage {
	return pages.NewHomePage(f.Page, f.cfg.BaseURL)
}

// Products returns the catalogue page object
func (f *Fixture) Products() *pages.ProductsPage {
	return pages.NewProductsPage(f.Page, f.cfg.BaseURL)
}

// Cart returns the cart page object
func (f *Fixture) Cart() *pages.CartPage {
	return pages.NewCartPage(f.Page, f.cfg.BaseURL)
}

// Login returns the login page object
func (f *Fixture) Login() *pages.LoginPage {
	return pages.NewLoginPage(f.Page, f.cfg.BaseURL)
}

func (f *Fixture) apiClient() *api.Client {
	return api.NewClient(f.Request(), f.cfg.APIBaseURL, f.logger)
}

// ProductsAPI returns a products controller on the context's channel
func (f *Fixture) ProductsAPI() *api.ProductsController {
	return api.NewProductsController(f.apiClient())
}

// BrandsAPI returns a brands controller on the context's channel
func (f *Fixture) BrandsAPI() *api.BrandsController {
	return api.NewBrandsController(f.apiClient())
}

// UserAPI returns a user controller on the context's channel
func (f *Fixture) UserAPI() *api.UserController {
	return api.NewUserController(f.apiClient())
}
