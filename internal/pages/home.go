package pages

import (
	"fmt"
	"testing"

	"github.com/playwright-community/playwright-go"
)

const (
	homePath           = "/"
	featuredItemsTitle = `.features_items .title.text-center:has-text("Features Items")`
	loggedInUser       = ".nav.navbar-nav b"
	logoutLink         = `a[href="/logout"]:has-text("Logout")`
	subscribeEmail     = "#susbscribe_email"
	subscribeButton    = "#subscribe"
	subscribeSuccess   = "#success-subscribe .alert-success"
	logoLink           = `.logo a[href="/"]`
)

// navLinks maps each header destination to its link selector and the URL
// fragment that shows the navigation landed
var navLinks = map[string]struct{ sel, fragment string }{
	"products":   {`a[href="/products"]`, "products"},
	"cart":       {`a[href="/view_cart"]`, "view_cart"},
	"login":      {`a[href="/login"]`, "login"},
	"contact_us": {`a[href="/contact_us"]`, "contact_us"},
	"test_cases": {`a[href="/test_cases"]`, "test_cases"},
	"api_list":   {`a[href="/api_list"]`, "api_list"},
}

// HomePage is the storefront landing page
type HomePage struct {
	BasePage
	catalog
}

// NewHomePage returns a home page bound to page
func NewHomePage(page playwright.Page, baseURL string) *HomePage {
	p := &HomePage{}
	p.BasePage = newBasePage(page, baseURL, p)
	p.catalog = catalog{base: &p.BasePage}
	return p
}

// Open navigates to the landing page
func (p *HomePage) Open() error {
	return p.Navigate(homePath)
}

// WaitForPageLoad waits for the header and the featured items
func (p *HomePage) WaitForPageLoad() error {
	if err := p.waitForNetworkIdle(); err != nil {
		return err
	}
	if err := waitVisible(p.locate(headerSelector), shortWait); err != nil {
		return wrap("wait for header", err)
	}
	return wrap("wait for featured items", waitVisible(p.locate(featuredItemsTitle), shortWait))
}

func (p *HomePage) goTo(dest string) error {
	link, ok := navLinks[dest]
	if !ok {
		return fmt.Errorf("unknown destination %q", dest)
	}
	return p.clickAndWaitFor(link.sel, link.fragment)
}

// GoToProducts follows the header link to the catalogue
func (p *HomePage) GoToProducts() error { return p.goTo("products") }

// GoToCart follows the header link to the cart
func (p *HomePage) GoToCart() error { return p.goTo("cart") }

// GoToLogin follows the header link to the login page
func (p *HomePage) GoToLogin() error { return p.goTo("login") }

// GoToContactUs follows the header link to the contact form
func (p *HomePage) GoToContactUs() error { return p.goTo("contact_us") }

// GoToTestCases follows the header link to the test case list
func (p *HomePage) GoToTestCases() error { return p.goTo("test_cases") }

// GoToAPIList follows the header link to the API list
func (p *HomePage) GoToAPIList() error { return p.goTo("api_list") }

// ClickLogo follows the logo back to the landing page
func (p *HomePage) ClickLogo() error {
	if err := p.locate(logoLink).Click(); err != nil {
		return wrap("click logo", err)
	}
	return p.waitForNetworkIdle()
}

// GetLoggedInUsername returns the name shown after "Logged in as", "" when
// nobody is logged in
func (p *HomePage) GetLoggedInUsername() string {
	user := p.locate(loggedInUser).First()
	if !visible(user) {
		return ""
	}
	return textOf(user)
}

// IsLoggedIn reports whether the header shows a logout link
func (p *HomePage) IsLoggedIn() bool {
	return p.isVisible(logoutLink)
}

// GetFeaturedProductCount returns the number of featured tiles
func (p *HomePage) GetFeaturedProductCount() int {
	return p.GetProductCount()
}

// AddFeaturedProductToCart adds the featured product at index
func (p *HomePage) AddFeaturedProductToCart(index int) error {
	return p.AddProductToCart(index)
}

// Subscribe submits email to the newsletter form
func (p *HomePage) Subscribe(email string) error {
	if err := p.locate(subscribeEmail).Fill(email); err != nil {
		return wrap("fill subscription email", err)
	}
	if err := p.locate(subscribeButton).Click(); err != nil {
		return wrap("subscribe", err)
	}
	return p.waitForNetworkIdle()
}

// IsSubscriptionSuccessVisible reports whether the subscription
// confirmation is showing
func (p *HomePage) IsSubscriptionSuccessVisible() bool {
	return waitVisible(p.locate(subscribeSuccess), shortWait) == nil
}

// VerifyHomePage fails t unless the landing page is showing
func (p *HomePage) VerifyHomePage(t testing.TB) {
	t.Helper()
	p.requireVisible(t, logoLink, productsSection, featuredItemsTitle)
}

// VerifyPageStructure fails t unless header, sidebar, grid and footer are
// present
func (p *HomePage) VerifyPageStructure(t testing.TB) {
	t.Helper()
	p.requireVisible(t, headerSelector, navMenu, leftSidebar, productsSection, footerSelector)
}
