package e2e

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Feature: Product catalogue
//
//	As a shopper
//	I want to browse, search and filter products
//	So that I can find what to buy
func TestProductsPage_Display(t *testing.T) {
	// Scenario: View all products
	//   Given I am on the products page
	//   Then every product tile has an image, a name, a price and an add button
	f := newFixture(t)
	products := f.Products()

	// Given I am on the products page
	require.NoError(t, products.Open())

	// Then every product tile is complete
	products.VerifyProductsPage(t)
	products.VerifyPageStructure(t)
	products.VerifyProductStructure(t)

	for _, p := range products.GetAllProductsInfo() {
		assert.NotEmpty(t, p.Name)
		assert.Greater(t, p.PriceValue(), 0.0, "price of %q", p.Name)
	}
}

func TestProductsPage_SearchValidTerms(t *testing.T) {
	// Scenario Outline: Search for a known product type
	//   Given I am on the products page
	//   When I search for <term>
	//   Then "Searched Products" lists matching products
	f := newFixture(t)
	products := f.Products()

	for _, term := range data.SearchTerms.Valid {
		t.Run(term, func(t *testing.T) {
			require.NoError(t, products.Open())

			require.NoError(t, products.SearchForProduct(term))

			products.VerifySearchFunctionality(t)
			assert.True(t, products.HasSearchResults(), "no results for %q", term)
		})
	}
}

func TestProductsPage_SearchUnknownTerm(t *testing.T) {
	// Scenario: Search for something that does not exist
	//   Given I am on the products page
	//   When I search for "xyz123"
	//   Then no product is listed
	f := newFixture(t)
	products := f.Products()

	require.NoError(t, products.Open())
	require.NoError(t, products.SearchForProduct("xyz123"))

	assert.False(t, products.HasSearchResults())
}

func TestProductsPage_SearchHostileInput(t *testing.T) {
	// Scenario: Hostile search input is handled
	//   Given I am on the products page
	//   When I search for an injection or script payload
	//   Then the page still renders its product section
	f := newFixture(t)
	products := f.Products()

	for _, input := range data.EdgeCases.Hostile() {
		require.NoError(t, products.Open())
		require.NoError(t, products.SearchForProduct(input))
		assert.True(t, products.IsOnProductsPage(), "page broke on %q", input)
	}
}

func TestProductsPage_FilterByCategory(t *testing.T) {
	// Scenario: Filter by a category
	//   Given I am on the products page
	//   When I pick "Tops" under "Women"
	//   Then only that category is listed
	f := newFixture(t)
	products := f.Products()

	require.NoError(t, products.Open())
	require.NoError(t, products.ClickCategoryLink("Tops"))

	products.VerifyCategoryFilter(t)
	assert.True(t, products.HasProducts())
}

func TestProductsPage_FilterByBrand(t *testing.T) {
	// Scenario Outline: Filter by a brand
	//   Given I am on the products page
	//   When I pick <brand>
	//   Then the listed count matches the count shown next to the brand
	f := newFixture(t)
	products := f.Products()

	for _, brand := range data.PopularBrands {
		t.Run(brand, func(t *testing.T) {
			require.NoError(t, products.Open())
			count := products.GetBrandWithCount(brand)

			require.NoError(t, products.ClickBrandLink(brand))

			products.VerifyBrandFilter(t)
			assert.Equal(t, count.Count, products.GetProductCount())
			products.VerifyURLContains(t, "/brand_products/")
		})
	}
}

func TestProductsPage_AddToCart(t *testing.T) {
	// Scenario: Add a product to the cart
	//   Given I am on the products page
	//   When I add the first product
	//   Then it appears in my cart
	f := newFixture(t)
	products := f.Products()

	require.NoError(t, products.Open())
	first := products.GetProductByIndex(0)

	require.NoError(t, products.AddProductToCart(0))

	cart := f.Cart()
	require.NoError(t, cart.Open())
	item, ok := cart.GetItemByName(first.Name)
	require.True(t, ok, "%q not in cart", first.Name)
	assert.Equal(t, 1, item.Quantity)
}

func TestProductsPage_PriceRange(t *testing.T) {
	// Scenario: Filter the listing by price
	//   Given I am on the products page
	//   Then every product in [500, 1000] is inside the range
	f := newFixture(t)
	products := f.Products()

	require.NoError(t, products.Open())
	for _, p := range products.FilterProductsByPriceRange(500, 1000) {
		assert.GreaterOrEqual(t, p.PriceValue(), 500.0)
		assert.LessOrEqual(t, p.PriceValue(), 1000.0)
		assert.False(t, strings.TrimSpace(p.Name) == "")
	}
}
