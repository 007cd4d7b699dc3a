package session

import (
	"fmt"
	"sync"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/themizzi/shopcheck/internal/api"
	"github.com/themizzi/shopcheck/internal/config"
)

// ContextOptions adjusts a single context. Zero values take the suite
// configuration.
type ContextOptions struct {
	ViewportWidth  int
	ViewportHeight int
	// RecordVideo overrides the suite setting when non-nil
	RecordVideo *bool
}

// Context is one isolated browser context: its own cookies, storage and
// request channel
type Context struct {
	browserCtx playwright.BrowserContext
	timeout    float64
	recording  bool
	logger     *zap.Logger
	closeOnce  sync.Once
	closeErr   error
}

// newContextOptions translates suite settings and per-context overrides
// into driver options
func newContextOptions(cfg *config.SuiteConfig, opts ContextOptions) (playwright.BrowserNewContextOptions, bool) {
	width, height := cfg.ViewportWidth, cfg.ViewportHeight
	if opts.ViewportWidth > 0 && opts.ViewportHeight > 0 {
		width, height = opts.ViewportWidth, opts.ViewportHeight
	}
	size := &playwright.Size{Width: width, Height: height}

	record := cfg.RecordVideo
	if opts.RecordVideo != nil {
		record = *opts.RecordVideo
	}

	out := playwright.BrowserNewContextOptions{
		Viewport:          size,
		IgnoreHttpsErrors: playwright.Bool(true),
	}
	if record {
		out.RecordVideo = &playwright.RecordVideo{Dir: cfg.VideoDir(), Size: size}
	}
	return out, record
}

// OpenContext creates a fresh context with the suite's viewport, timeout
// and video settings
func (p *Provider) OpenContext(opts ContextOptions) (*Context, error) {
	options, record := newContextOptions(p.cfg, opts)
	browserCtx, err := p.browser.NewContext(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open browser context: %w", err)
	}
	timeout := p.cfg.TimeoutMillis()
	browserCtx.SetDefaultTimeout(timeout)
	p.logger.Debug("context opened", zap.Bool("video", record))

	return &Context{
		browserCtx: browserCtx,
		timeout:    timeout,
		recording:  record,
		logger:     p.logger,
	}, nil
}

// NewPage opens a tab in the context with the suite timeout applied
func (c *Context) NewPage() (playwright.Page, error) {
	page, err := c.browserCtx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	page.SetDefaultTimeout(c.timeout)
	return page, nil
}

// Request returns the context's own request channel. It shares cookies
// with the context's pages and is not safe for concurrent use.
func (c *Context) Request() api.RequestChannel {
	return c.browserCtx.Request()
}

// BrowserContext exposes the underlying driver context
func (c *Context) BrowserContext() playwright.BrowserContext {
	return c.browserCtx
}

// Recording reports whether the context records video
func (c *Context) Recording() bool {
	return c.recording
}

// Close closes every page of the context and flushes any video. Later calls
// return the first result.
func (c *Context) Close() error {
	c.closeOnce.Do(func() {
		if err := c.browserCtx.Close(); err != nil {
			c.closeErr = fmt.Errorf("failed to close browser context: %w", err)
		}
		c.logger.Debug("context closed")
	})
	return c.closeErr
}
