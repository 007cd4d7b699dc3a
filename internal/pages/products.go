package pages

import (
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
)

const (
	productsPath       = "/products"
	allProductsTitle   = `.title.text-center:has-text("All Products")`
	searchInput        = "#search_product"
	searchButton       = "#submit_search"
	searchResults      = ".features_items .product-image-wrapper"
	searchResultsNames = ".features_items .product-image-wrapper .productinfo.text-center p"
)

// ProductsPage is the full catalogue with search and filters
type ProductsPage struct {
	BasePage
	catalog
}

// NewProductsPage returns a products page bound to page
func NewProductsPage(page playwright.Page, baseURL string) *ProductsPage {
	p := &ProductsPage{}
	p.BasePage = newBasePage(page, baseURL, p)
	p.catalog = catalog{base: &p.BasePage}
	return p
}

// Open navigates to the catalogue
func (p *ProductsPage) Open() error {
	return p.Navigate(productsPath)
}

// WaitForPageLoad waits for the product grid and its title
func (p *ProductsPage) WaitForPageLoad() error {
	if err := p.waitForNetworkIdle(); err != nil {
		return err
	}
	if err := waitVisible(p.locate(productsSection).First(), shortWait); err != nil {
		return wrap("wait for products section", err)
	}
	return wrap("wait for products title", waitVisible(p.locate(allProductsTitle).First(), shortWait))
}

// SearchForProduct submits term through the search box
func (p *ProductsPage) SearchForProduct(term string) error {
	if err := p.locate(searchInput).Fill(term); err != nil {
		return wrap("fill search", err)
	}
	if err := p.locate(searchButton).Click(); err != nil {
		return wrap("submit search", err)
	}
	return p.waitForNetworkIdle()
}

// GetSearchResultsCount returns the number of tiles in the results grid
func (p *ProductsPage) GetSearchResultsCount() int {
	return countOf(p.locate(searchResults))
}

// GetSearchResultsNames returns the names of the result tiles
func (p *ProductsPage) GetSearchResultsNames() []string {
	return allTexts(p.locate(searchResultsNames))
}

// SearchResultsContain reports whether any result name contains term,
// ignoring case
func (p *ProductsPage) SearchResultsContain(term string) bool {
	term = strings.ToLower(term)
	for _, name := range p.GetSearchResultsNames() {
		if strings.Contains(strings.ToLower(name), term) {
			return true
		}
	}
	return false
}

// HasSearchResults reports whether the results grid has any tile
func (p *ProductsPage) HasSearchResults() bool {
	return p.GetSearchResultsCount() > 0
}

// IsOnProductsPage reports whether the tab is on a products listing
func (p *ProductsPage) IsOnProductsPage() bool {
	return strings.Contains(p.URL(), "products")
}

// VerifyProductsPage fails t unless the catalogue is showing
func (p *ProductsPage) VerifyProductsPage(t testing.TB) {
	t.Helper()
	p.requireVisible(t, productsSection, allProductsTitle)
	p.VerifyURLContains(t, "products")
}

// VerifyPageStructure fails t unless the page chrome and sidebars are present
func (p *ProductsPage) VerifyPageStructure(t testing.TB) {
	t.Helper()
	p.requireVisible(t, headerSelector, productsSection, leftSidebar, brandsSection, footerSelector)
}

// VerifySearchFunctionality fails t unless the search controls are present
func (p *ProductsPage) VerifySearchFunctionality(t testing.TB) {
	t.Helper()
	p.requireVisible(t, searchInput, searchButton)
}
