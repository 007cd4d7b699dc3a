package pages

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
)

const (
	cartPath         = "/view_cart"
	cartSection      = "#cart_info_table"
	cartRows         = "#cart_info_table tbody tr"
	cellName         = "td.cart_description h4 a"
	cellPrice        = "td.cart_price p"
	cellQuantity     = "td.cart_quantity input"
	cellQuantityText = "td.cart_quantity button"
	cellTotal        = "td.cart_total p"
	cellDelete       = "td.cart_delete a"
	cellImage        = "td.cart_product img"
	cartGrandTotal   = ".cart_total_price"
	checkoutButton   = ".btn.btn-default.check_out"
	emptyCartMessage = `p:has-text("Cart is empty!")`
	emptyCartText    = "#empty_cart p b"
	emptyCartLink    = `a:has-text("here")`

	checkoutModal      = "#checkoutModal.modal"
	checkoutModalTitle = "#checkoutModal .modal-title"
	registerLogin      = `#checkoutModal a:has-text("Register / Login")`
	checkoutAsGuest    = `#checkoutModal button:has-text("Checkout as Guest")`
)

// CartItem is one row of the cart table as displayed
type CartItem struct {
	Index    int
	Name     string
	Price    string
	Quantity int
	Total    string
}

// CartSummary is a snapshot of the cart's state
type CartSummary struct {
	ItemsCount  int
	TotalPrice  float64
	IsEmpty     bool
	CanCheckout bool
}

// CartPage is the shopping cart
type CartPage struct {
	BasePage
}

// NewCartPage returns a cart page bound to page
func NewCartPage(page playwright.Page, baseURL string) *CartPage {
	p := &CartPage{}
	p.BasePage = newBasePage(page, baseURL, p)
	return p
}

// Open navigates to the cart
func (p *CartPage) Open() error {
	return p.Navigate(cartPath)
}

// WaitForPageLoad waits for either the first cart row or the empty-cart
// message to show
func (p *CartPage) WaitForPageLoad() error {
	if err := p.waitForNetworkIdle(); err != nil {
		return err
	}
	return wrap("wait for cart contents", waitVisible(p.locate(cartRows+", "+emptyCartMessage).First(), shortWait))
}

func (p *CartPage) row(index int) playwright.Locator {
	return p.locate(cartRows).Nth(index)
}

// GetCartItemsCount returns the number of rows, 0 when the cart is empty
func (p *CartPage) GetCartItemsCount() int {
	if p.IsCartEmpty() {
		return 0
	}
	return countOf(p.locate(cartRows))
}

// GetCartItemByIndex returns the row at index; fields are empty when absent
func (p *CartPage) GetCartItemByIndex(index int) CartItem {
	row := p.row(index)
	return CartItem{
		Index:    index,
		Name:     textOf(row.Locator(cellName)),
		Price:    textOf(row.Locator(cellPrice)),
		Quantity: rowQuantity(row),
		Total:    textOf(row.Locator(cellTotal)),
	}
}

// rowQuantity reads an editable quantity input, falling back to the
// read-only quantity badge and then to 1
func rowQuantity(row playwright.Locator) int {
	if v, err := row.Locator(cellQuantity).InputValue(); err == nil && v != "" {
		return parseQuantity(v)
	}
	return parseQuantity(textOf(row.Locator(cellQuantityText)))
}

// GetAllCartItems returns every row in display order
func (p *CartPage) GetAllCartItems() []CartItem {
	n := p.GetCartItemsCount()
	items := make([]CartItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, p.GetCartItemByIndex(i))
	}
	return items
}

// GetItemByName returns the first row whose name contains name, ignoring case
func (p *CartPage) GetItemByName(name string) (CartItem, bool) {
	i := p.indexOf(name)
	if i < 0 {
		return CartItem{}, false
	}
	return p.GetCartItemByIndex(i), true
}

func (p *CartPage) indexOf(name string) int {
	name = strings.ToLower(name)
	for _, item := range p.GetAllCartItems() {
		if strings.Contains(strings.ToLower(item.Name), name) {
			return item.Index
		}
	}
	return -1
}

// ContainsItems reports whether every name matches some row, ignoring case
func (p *CartPage) ContainsItems(names ...string) bool {
	items := p.GetAllCartItems()
	for _, want := range names {
		want = strings.ToLower(want)
		found := false
		for _, item := range items {
			if strings.Contains(strings.ToLower(item.Name), want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// UpdateItemQuantity sets the quantity of the row at index
func (p *CartPage) UpdateItemQuantity(index, quantity int) error {
	input := p.row(index).Locator(cellQuantity)
	if err := input.Clear(); err != nil {
		return wrap(fmt.Sprintf("clear quantity %d", index), err)
	}
	if err := input.Fill(strconv.Itoa(quantity)); err != nil {
		return wrap(fmt.Sprintf("fill quantity %d", index), err)
	}
	if err := input.Press("Tab"); err != nil {
		return wrap("commit quantity", err)
	}
	return p.waitForNetworkIdle()
}

// UpdateItemQuantityByName sets the quantity of the row matching name and
// reports whether such a row existed
func (p *CartPage) UpdateItemQuantityByName(name string, quantity int) (bool, error) {
	i := p.indexOf(name)
	if i < 0 {
		return false, nil
	}
	return true, p.UpdateItemQuantity(i, quantity)
}

// RemoveItem deletes the row at index
func (p *CartPage) RemoveItem(index int) error {
	before := countOf(p.locate(cartRows))
	if err := p.row(index).Locator(cellDelete).Click(); err != nil {
		return wrap(fmt.Sprintf("remove item %d", index), err)
	}
	if err := p.waitForNetworkIdle(); err != nil {
		return err
	}
	return wrap("wait for row removal", p.waitForRowCount(before-1))
}

// waitForRowCount waits until the table has n rows. Rows are removed
// client-side after the delete request completes.
func (p *CartPage) waitForRowCount(n int) error {
	if n <= 0 {
		return waitVisible(p.locate(emptyCartMessage), shortWait)
	}
	return waitHidden(p.locate(cartRows).Nth(n), shortWait)
}

// RemoveItemByName deletes the row matching name and reports whether such a
// row existed
func (p *CartPage) RemoveItemByName(name string) (bool, error) {
	i := p.indexOf(name)
	if i < 0 {
		return false, nil
	}
	return true, p.RemoveItem(i)
}

// RemoveAllItems deletes the first row once per row present at call time
func (p *CartPage) RemoveAllItems() error {
	n := p.GetCartItemsCount()
	for i := 0; i < n; i++ {
		if err := p.RemoveItem(0); err != nil {
			return err
		}
	}
	return nil
}

// ClearCart deletes the first row until the cart reports empty
func (p *CartPage) ClearCart() error {
	for limit := countOf(p.locate(cartRows)); !p.IsCartEmpty(); limit-- {
		if limit < 0 {
			return fmt.Errorf("clear cart: %w: rows remain", ErrVerification)
		}
		if err := p.RemoveItem(0); err != nil {
			return err
		}
	}
	return nil
}

// GetItemTotalPrice returns the displayed row total at index, 0 when absent
func (p *CartPage) GetItemTotalPrice(index int) float64 {
	return ParsePrice(textOf(p.row(index).Locator(cellTotal)))
}

// GetCartTotalPrice returns the displayed grand total. When the page shows
// no single grand-total element the displayed row totals are summed.
func (p *CartPage) GetCartTotalPrice() float64 {
	total := p.locate(cartGrandTotal)
	if countOf(total) == 1 {
		return ParsePrice(textOf(total))
	}
	var sum float64
	for i := 0; i < p.GetCartItemsCount(); i++ {
		sum += p.GetItemTotalPrice(i)
	}
	return sum
}

// CalculateExpectedTotal returns the sum of unit price times quantity
func (p *CartPage) CalculateExpectedTotal() float64 {
	expected, _ := Reconcile(p.GetAllCartItems(), 0)
	return expected
}

// VerifyCartTotals reports whether the displayed total matches the
// computed one
func (p *CartPage) VerifyCartTotals() bool {
	_, ok := Reconcile(p.GetAllCartItems(), p.GetCartTotalPrice())
	return ok
}

// GetCartSummary snapshots the cart
func (p *CartPage) GetCartSummary() CartSummary {
	return CartSummary{
		ItemsCount:  p.GetCartItemsCount(),
		TotalPrice:  p.GetCartTotalPrice(),
		IsEmpty:     p.IsCartEmpty(),
		CanCheckout: p.CanProceedToCheckout(),
	}
}

// ProceedToCheckout presses the checkout button
func (p *CartPage) ProceedToCheckout() error {
	if err := p.locate(checkoutButton).Click(); err != nil {
		return wrap("proceed to checkout", err)
	}
	return p.waitForNetworkIdle()
}

// RegisterLoginFromCheckout follows the checkout modal's login link
func (p *CartPage) RegisterLoginFromCheckout() error {
	return p.clickAndWaitFor(registerLogin, "login")
}

// CheckoutAsGuest presses the checkout modal's guest button
func (p *CartPage) CheckoutAsGuest() error {
	if err := p.locate(checkoutAsGuest).Click(); err != nil {
		return wrap("checkout as guest", err)
	}
	return p.waitForNetworkIdle()
}

// CloseCheckoutModal dismisses the checkout modal with Escape
func (p *CartPage) CloseCheckoutModal() error {
	if err := p.page.Keyboard().Press("Escape"); err != nil {
		return wrap("press escape", err)
	}
	return wrap("wait for checkout modal to close", waitHidden(p.locate(checkoutModal), shortWait))
}

// ContinueShoppingFromEmptyCart follows the empty-cart link to the catalogue
func (p *CartPage) ContinueShoppingFromEmptyCart() error {
	return p.clickAndWaitFor(emptyCartLink, "products")
}

// IsCartEmpty reports whether the empty-cart message is showing
func (p *CartPage) IsCartEmpty() bool {
	return p.isVisible(emptyCartMessage)
}

// HasItems reports whether the cart is not empty
func (p *CartPage) HasItems() bool {
	return !p.IsCartEmpty()
}

// CanProceedToCheckout reports whether the checkout button is usable
func (p *CartPage) CanProceedToCheckout() bool {
	button := p.locate(checkoutButton)
	if !visible(button) {
		return false
	}
	enabled, err := button.IsEnabled()
	return err == nil && enabled
}

// GetEmptyCartMessage returns the bold empty-cart text without the link
// sentence after it, "" when items are present
func (p *CartPage) GetEmptyCartMessage() string {
	if !p.IsCartEmpty() {
		return ""
	}
	if text := textOf(p.locate(emptyCartText)); text != "" {
		return text
	}
	if text, _, found := strings.Cut(textOf(p.locate(emptyCartMessage)), "!"); found {
		return text + "!"
	}
	return textOf(p.locate(emptyCartMessage))
}

// IsOnCartPage reports whether the tab is on the cart
func (p *CartPage) IsOnCartPage() bool {
	return strings.Contains(p.URL(), "view_cart")
}

// VerifyCartPage fails t unless the tab shows the cart
func (p *CartPage) VerifyCartPage(t testing.TB) {
	t.Helper()
	p.VerifyURLContains(t, "view_cart")
	p.requireVisible(t, cartSection)
}

// VerifyPageStructure fails t unless header, cart and footer are present
func (p *CartPage) VerifyPageStructure(t testing.TB) {
	t.Helper()
	p.requireVisible(t, headerSelector, cartSection, footerSelector)
}

// VerifyEmptyCart fails t unless the empty-cart state is showing
func (p *CartPage) VerifyEmptyCart(t testing.TB) {
	t.Helper()
	p.requireVisible(t, emptyCartMessage, emptyCartLink)
}

// VerifyCheckoutModalVisible fails t unless the checkout modal is showing
func (p *CartPage) VerifyCheckoutModalVisible(t testing.TB) {
	t.Helper()
	p.requireVisible(t, checkoutModal, checkoutModalTitle, registerLogin, checkoutAsGuest)
}

// VerifyCartItemsStructure fails t unless the first row has every cell.
// An empty cart passes.
func (p *CartPage) VerifyCartItemsStructure(t testing.TB) {
	t.Helper()
	if p.GetCartItemsCount() == 0 {
		return
	}
	first := p.row(0)
	for _, sel := range []string{cellImage, cellName, cellPrice, cellTotal, cellDelete} {
		require.NoError(t, p.expect.Locator(first.Locator(sel)).ToBeVisible(), "%v: row lacks %s", ErrVerification, sel)
	}
}
