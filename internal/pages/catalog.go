package pages

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
)

// Product grid, category accordion, brand list and cart modal. The home and
// products pages share this markup.
const (
	productsSection  = ".features_items"
	productWrappers  = ".product-image-wrapper"
	productName      = ".productinfo.text-center p"
	productPrice     = ".productinfo.text-center h2"
	productImage     = ".productinfo.text-center img"
	addToCartButtons = "a.add-to-cart[data-product-id]"
	viewProductLinks = `a[href*="/product_details/"]:has-text("View Product")`
	productOverlays  = ".product-overlay .overlay-content"

	leftSidebar       = ".left-sidebar"
	categoryTitle     = `.left-sidebar h2:has-text("Category")`
	categoryAccordion = "#accordian"
	categoryLinks     = `#accordian .panel-body a[href*="/category_products/"]`

	brandsSection = ".brands_products"
	brandsTitle   = `.brands_products h2:has-text("Brands")`
	brandsList    = ".brands_products .brands-name"
	brandLinks    = `.brands_products a[href*="/brand_products/"]`

	cartModal         = "#cartModal.modal"
	cartModalTitle    = `#cartModal .modal-title:has-text("Added!")`
	continueShopping  = `#cartModal button.close-modal:has-text("Continue Shopping")`
	viewCartFromModal = `#cartModal a[href="/view_cart"]:has-text("View Cart")`
)

// ProductInfo is one tile of the product grid
type ProductInfo struct {
	Index int
	Name  string
	Price string
}

// PriceValue returns the numeric price
func (p ProductInfo) PriceValue() float64 {
	return ParsePrice(p.Price)
}

// BrandCount is a brand link with the product count shown next to it
type BrandCount struct {
	Name  string
	Count int
}

// categoryGroups maps sub-category keywords to the accordion panel holding them
var categoryGroups = []struct {
	parent   string
	keywords []string
}{
	{"Women", []string{"dress", "tops", "saree"}},
	{"Men", []string{"tshirts", "jeans"}},
	{"Kids", []string{"kids"}},
}

// categoryParent returns the accordion panel that holds category, or ""
func categoryParent(category string) string {
	lower := strings.ToLower(category)
	for _, g := range categoryGroups {
		for _, k := range g.keywords {
			if strings.Contains(lower, k) {
				return g.parent
			}
		}
	}
	return ""
}

// parseBrandCount reads the "(N)" suffix of a brand link, 0 when absent
func parseBrandCount(text string) int {
	open := strings.LastIndex(text, "(")
	end := strings.LastIndex(text, ")")
	if open == -1 || end <= open {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(text[open+1 : end]))
	if err != nil {
		return 0
	}
	return n
}

type catalog struct {
	base *BasePage
}

// GetProductCount returns the number of product tiles on the page
func (c catalog) GetProductCount() int {
	return countOf(c.base.locate(productWrappers))
}

// GetProductNames returns the displayed product names
func (c catalog) GetProductNames() []string {
	return allTexts(c.base.locate(productName))
}

// GetProductPrices returns the displayed product prices
func (c catalog) GetProductPrices() []string {
	return allTexts(c.base.locate(productPrice))
}

// GetProductByIndex returns the tile at index; fields are empty when absent
func (c catalog) GetProductByIndex(index int) ProductInfo {
	tile := c.base.locate(productWrappers).Nth(index)
	return ProductInfo{
		Index: index,
		Name:  textOf(tile.Locator(productName)),
		Price: textOf(tile.Locator(productPrice)),
	}
}

// GetAllProductsInfo returns every tile on the page
func (c catalog) GetAllProductsInfo() []ProductInfo {
	n := c.GetProductCount()
	products := make([]ProductInfo, 0, n)
	for i := 0; i < n; i++ {
		products = append(products, c.GetProductByIndex(i))
	}
	return products
}

// FilterProductsByPriceRange returns tiles whose price lies in [lo, hi]
func (c catalog) FilterProductsByPriceRange(lo, hi float64) []ProductInfo {
	var out []ProductInfo
	for _, p := range c.GetAllProductsInfo() {
		if v := p.PriceValue(); v >= lo && v <= hi {
			out = append(out, p)
		}
	}
	return out
}

// HasProducts reports whether any product tile is present
func (c catalog) HasProducts() bool {
	return c.GetProductCount() > 0
}

// GetCategoryNames expands every accordion panel and returns the
// sub-category link texts
func (c catalog) GetCategoryNames() []string {
	for _, g := range categoryGroups {
		_ = c.expandCategory(g.parent)
	}
	return allTexts(c.base.locate(categoryLinks))
}

func (c catalog) expandCategory(parent string) error {
	panel := c.base.locate(fmt.Sprintf("#%s.panel-collapse", parent))
	if visible(panel) {
		return nil
	}
	header := c.base.locate(fmt.Sprintf(`#accordian a[href="#%s"]`, parent))
	if err := header.Click(); err != nil {
		return wrap("expand category "+parent, err)
	}
	return wrap("wait for category "+parent, waitVisible(panel, shortWait))
}

// ClickCategoryLink expands the panel holding category and follows its link
func (c catalog) ClickCategoryLink(category string) error {
	if parent := categoryParent(category); parent != "" {
		if err := c.expandCategory(parent); err != nil {
			return err
		}
	}
	link := c.base.locate(categoryLinks).Filter(playwright.LocatorFilterOptions{HasText: category}).First()
	if err := link.Click(); err != nil {
		return wrap("click category "+category, err)
	}
	return c.base.waitForNetworkIdle()
}

// GetBrandNames returns the brand link texts, counts included
func (c catalog) GetBrandNames() []string {
	return allTexts(c.base.locate(brandLinks))
}

// GetBrandWithCount returns the product count shown next to brand
func (c catalog) GetBrandWithCount(brand string) BrandCount {
	link := c.base.locate(brandLinks).Filter(playwright.LocatorFilterOptions{HasText: brand}).First()
	return BrandCount{Name: brand, Count: parseBrandCount(textOf(link))}
}

// ClickBrandLink follows the link for brand
func (c catalog) ClickBrandLink(brand string) error {
	link := c.base.locate(brandLinks).Filter(playwright.LocatorFilterOptions{HasText: brand}).First()
	if err := link.Click(); err != nil {
		return wrap("click brand "+brand, err)
	}
	return c.base.waitForNetworkIdle()
}

// AddProductToCart adds the product at index and dismisses the confirmation
// modal
func (c catalog) AddProductToCart(index int) error {
	if err := c.base.locate(addToCartButtons).Nth(index).Click(); err != nil {
		return wrap(fmt.Sprintf("add product %d", index), err)
	}
	modal := c.base.locate(cartModal)
	if err := waitVisible(modal, shortWait); err != nil {
		return wrap("wait for cart modal", err)
	}
	if err := c.base.locate(continueShopping).Click(); err != nil {
		return wrap("continue shopping", err)
	}
	return wrap("wait for cart modal to close", waitHidden(modal, shortWait))
}

// ViewProduct opens the detail page of the product at index
func (c catalog) ViewProduct(index int) error {
	if err := c.base.locate(viewProductLinks).Nth(index).Click(); err != nil {
		return wrap(fmt.Sprintf("view product %d", index), err)
	}
	return wrap("wait for product details", c.base.page.WaitForURL(containing("product_details")))
}

// HoverOverProduct hovers the tile at index until its overlay shows
func (c catalog) HoverOverProduct(index int) error {
	if err := c.base.locate(productWrappers).Nth(index).Hover(); err != nil {
		return wrap(fmt.Sprintf("hover product %d", index), err)
	}
	return wrap("wait for overlay", waitVisible(c.base.locate(productOverlays).Nth(index), shortWait))
}

// ViewCartFromModal follows the modal's cart link
func (c catalog) ViewCartFromModal() error {
	if err := c.base.locate(viewCartFromModal).Click(); err != nil {
		return wrap("view cart from modal", err)
	}
	return wrap("wait for cart", c.base.page.WaitForURL(containing("view_cart")))
}

// VerifyCartModalVisible fails t unless the add-to-cart modal is showing
func (c catalog) VerifyCartModalVisible(t testing.TB) {
	t.Helper()
	c.base.requireVisible(t, cartModal, cartModalTitle, continueShopping, viewCartFromModal)
}

// VerifyCategoryFilter fails t unless the category accordion is present
func (c catalog) VerifyCategoryFilter(t testing.TB) {
	t.Helper()
	sels := []string{categoryTitle, categoryAccordion}
	for _, g := range categoryGroups {
		sels = append(sels, fmt.Sprintf(`#accordian a[href="#%s"]`, g.parent))
	}
	c.base.requireVisible(t, sels...)
}

// VerifyBrandFilter fails t unless the brand list is present
func (c catalog) VerifyBrandFilter(t testing.TB) {
	t.Helper()
	c.base.requireVisible(t, brandsSection, brandsTitle, brandsList)
}

// VerifyProductStructure fails t unless the first tile carries an image,
// name, price and both actions
func (c catalog) VerifyProductStructure(t testing.TB) {
	t.Helper()
	first := c.base.locate(productWrappers).First()
	require.NoError(t, c.base.expect.Locator(first).ToBeVisible(), "%v: no product tile", ErrVerification)
	for _, sel := range []string{productImage, productPrice, productName, "a.add-to-cart", `a:has-text("View Product")`} {
		require.NoError(t, c.base.expect.Locator(first.Locator(sel).First()).ToBeVisible(), "%v: tile lacks %s", ErrVerification, sel)
	}
}
