// Package pages models the storefront's pages as objects. Selectors are
// resolved on every call so a page object never holds a stale element.
//
// Queries (Get*, Is*, Has*) return zero values when an element is absent.
// Actions return an error. Verify* methods fail the calling test.
package pages

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
)

// PageObject is implemented by every page; WaitForPageLoad blocks until the
// page's own readiness condition holds.
type PageObject interface {
	WaitForPageLoad() error
}

const (
	headerSelector = "#header"
	footerSelector = "#footer"
	navMenu        = ".shop-menu.pull-right"
)

// shortWait bounds waits for conditions that should settle quickly
const shortWait = 5000

// BasePage carries what every page needs: the browser tab, the site root
// and a way to call the concrete page's readiness check.
type BasePage struct {
	page    playwright.Page
	baseURL string
	self    PageObject
	expect  playwright.PlaywrightAssertions
}

func newBasePage(page playwright.Page, baseURL string, self PageObject) BasePage {
	return BasePage{
		page:    page,
		baseURL: strings.TrimRight(baseURL, "/"),
		self:    self,
		expect:  playwright.NewPlaywrightAssertions(),
	}
}

// Page returns the underlying tab
func (b *BasePage) Page() playwright.Page {
	return b.page
}

// URLFor resolves path against the base URL. Absolute URLs are returned as-is.
func (b *BasePage) URLFor(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return b.baseURL + path
}

// Navigate opens path and waits for the network to settle and the page to
// report ready
func (b *BasePage) Navigate(path string) error {
	target := b.URLFor(path)
	if _, err := b.page.Goto(target); err != nil {
		return wrap("goto "+target, err)
	}
	if err := b.waitForNetworkIdle(); err != nil {
		return err
	}
	if b.self == nil {
		return nil
	}
	return b.self.WaitForPageLoad()
}

func (b *BasePage) waitForNetworkIdle() error {
	return wrap("wait for network idle", b.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	}))
}

func (b *BasePage) locate(sel string) playwright.Locator {
	return b.page.Locator(sel)
}

// Title returns the document title, or "" when it cannot be read
func (b *BasePage) Title() string {
	title, err := b.page.Title()
	if err != nil {
		return ""
	}
	return title
}

// URL returns the tab's current address
func (b *BasePage) URL() string {
	return b.page.URL()
}

// TakeScreenshot writes a full-page PNG to path, creating parent directories
func (b *BasePage) TakeScreenshot(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return wrap("create screenshot dir", err)
	}
	_, err := b.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return wrap("screenshot", err)
}

func (b *BasePage) isVisible(sel string) bool {
	return visible(b.locate(sel))
}

func visible(l playwright.Locator) bool {
	ok, err := l.IsVisible()
	return err == nil && ok
}

func textOf(l playwright.Locator) string {
	text, err := l.TextContent()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

func countOf(l playwright.Locator) int {
	n, err := l.Count()
	if err != nil {
		return 0
	}
	return n
}

func allTexts(l playwright.Locator) []string {
	texts, err := l.AllTextContents()
	if err != nil {
		return nil
	}
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = strings.TrimSpace(t)
	}
	return out
}

func waitVisible(l playwright.Locator, timeout float64) error {
	return l.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(timeout),
	})
}

func waitHidden(l playwright.Locator, timeout float64) error {
	return l.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: playwright.Float(timeout),
	})
}

// clickAndWaitFor clicks sel and waits until the URL contains fragment
func (b *BasePage) clickAndWaitFor(sel, fragment string) error {
	if err := b.locate(sel).First().Click(); err != nil {
		return wrap("click "+sel, err)
	}
	return wrap("wait for url containing "+fragment, b.page.WaitForURL(containing(fragment)))
}

// requireVisible fails t unless every selector is visible
func (b *BasePage) requireVisible(t testing.TB, sels ...string) {
	t.Helper()
	for _, sel := range sels {
		require.NoError(t, b.expect.Locator(b.locate(sel).First()).ToBeVisible(), "%v: %s not visible", ErrVerification, sel)
	}
}

// VerifyURLContains fails t unless the current URL contains fragment
func (b *BasePage) VerifyURLContains(t testing.TB, fragment string) {
	t.Helper()
	require.NoError(t, b.expect.Page(b.page).ToHaveURL(containing(fragment)), "%v: url %s", ErrVerification, b.URL())
}

// VerifyTitleContains fails t unless the document title contains fragment
func (b *BasePage) VerifyTitleContains(t testing.TB, fragment string) {
	t.Helper()
	require.NoError(t, b.expect.Page(b.page).ToHaveTitle(containing(fragment)), "%v: title %q", ErrVerification, b.Title())
}

func containing(fragment string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(fragment))
}
