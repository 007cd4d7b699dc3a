// Package testdata supplies the fixture values shared by UI and API tests.
// Static values are built once per process; generated values are fresh on
// every call.
package testdata

import (
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/themizzi/shopcheck/internal/api"
)

// User is a set of login credentials
type User struct {
	Name     string
	Email    string
	Password string
}

// SampleProduct is a catalogue entry as the storefront displays it
type SampleProduct struct {
	Name     string
	Price    string
	Category string
	Brand    string
}

// SearchTerms groups search inputs by expected outcome
type SearchTerms struct {
	Valid             []string
	Invalid           []string
	SpecialCharacters []string
}

// Category is a top-level category with its sub-categories
type Category struct {
	Parent        string
	Subcategories []string
}

// EdgeCases groups hostile or unusual string inputs
type EdgeCases struct {
	EmptyStrings      []string
	SpecialCharacters []string
	Unicode           []string
	VeryLong          []string
	SQLInjection      []string
	XSS               []string
}

// Validation holds the patterns and limits user input is checked against
type Validation struct {
	Email             *regexp.Regexp
	Phone             *regexp.Regexp
	Price             *regexp.Regexp
	PasswordMinLength int
	NameMinLength     int
}

// Thresholds are the timing budgets used by performance checks
type Thresholds struct {
	PageLoad     time.Duration
	APIResponse  time.Duration
	Search       time.Duration
	CartUpdate   time.Duration
	CartPageLoad time.Duration
}

// Bundle is the process-wide set of static fixtures
type Bundle struct {
	ValidUser            User
	InvalidUser          User
	NewUser              User
	SampleUser           api.Account
	Products             []SampleProduct
	ExpectedProductCount int
	SearchTerms          SearchTerms
	Categories           []Category
	Brands               []string
	PopularBrands        []string
	EdgeCases            EdgeCases
	Validation           Validation
	Thresholds           Thresholds
}

var defaultBundle = sync.OnceValue(buildBundle)

// Default returns a copy of the static bundle. The copy may be modified by the
// caller without affecting other tests.
func Default() Bundle {
	return defaultBundle().clone()
}

func buildBundle() Bundle {
	return Bundle{
		ValidUser: User{
			Name:     "TestUser",
			Email:    "test.user@example.com",
			Password: "testpassword123",
		},
		InvalidUser: User{
			Name:     "InvalidUser",
			Email:    "invalid@example.com",
			Password: "wrongpassword",
		},
		NewUser: User{
			Name:     "NewUser",
			Email:    "newuser@example.com",
			Password: "newpassword123",
		},
		SampleUser: api.Account{
			Name:         "Test User",
			Email:        "testuser@example.com",
			Password:     "testpassword123",
			Title:        "Mr",
			BirthDate:    "1",
			BirthMonth:   "January",
			BirthYear:    "1990",
			FirstName:    "Test",
			LastName:     "User",
			Company:      "Test Co",
			Address1:     "123 Test Street",
			Address2:     "Apt 1",
			Country:      "United States",
			State:        "California",
			City:         "Los Angeles",
			Zipcode:      "90210",
			MobileNumber: "1234567890",
		},
		Products: []SampleProduct{
			{Name: "Blue Top", Price: "Rs. 500", Category: "Women", Brand: "Polo"},
			{Name: "Men Tshirt", Price: "Rs. 400", Category: "Men", Brand: "H&M"},
			{Name: "Stylish Dress", Price: "Rs. 600", Category: "Women", Brand: "Madame"},
		},
		ExpectedProductCount: 10,
		SearchTerms: SearchTerms{
			Valid:             []string{"dress", "tshirt", "jean", "top", "shirt"},
			Invalid:           []string{"", "nonexistent", "xyz123"},
			SpecialCharacters: []string{"dress!", "tshirt@", "jean#"},
		},
		Categories: []Category{
			{Parent: "Women", Subcategories: []string{"Dress", "Tops", "Saree"}},
			{Parent: "Men", Subcategories: []string{"Tshirts", "Jeans"}},
			{Parent: "Kids", Subcategories: []string{"Dress", "Tops & Shirts"}},
		},
		Brands:        []string{"Polo", "H&M", "Madame", "Mast & Harbour", "Babyhug", "Allen Solly Junior", "Kookie Kids", "Biba"},
		PopularBrands: []string{"Polo", "H&M", "Madame", "Mast & Harbour"},
		EdgeCases: EdgeCases{
			EmptyStrings:      []string{"", " ", "  "},
			SpecialCharacters: []string{"!@#$%^&*()", "test@#$", "123!@#"},
			Unicode:           []string{"测试", "café", "naïve"},
			VeryLong:          []string{strings.Repeat("a", 1000), strings.Repeat("test", 250)},
			SQLInjection:      []string{"'; DROP TABLE users; --", "1' OR '1'='1"},
			XSS:               []string{"<script>alert('xss')</script>", "<img src=x onerror=alert(1)>"},
		},
		Validation: Validation{
			Email:             regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`),
			Phone:             regexp.MustCompile(`^\d{10}$`),
			Price:             regexp.MustCompile(`^Rs\. \d+$`),
			PasswordMinLength: 6,
			NameMinLength:     2,
		},
		Thresholds: Thresholds{
			PageLoad:     5 * time.Second,
			APIResponse:  3 * time.Second,
			Search:       2 * time.Second,
			CartUpdate:   time.Second,
			CartPageLoad: 5 * time.Second,
		},
	}
}

// Subcategories returns the sub-categories of a parent category, or nil
func (b Bundle) Subcategories(parent string) []string {
	for _, c := range b.Categories {
		if strings.EqualFold(c.Parent, parent) {
			return slices.Clone(c.Subcategories)
		}
	}
	return nil
}

// Hostile returns every edge-case string in one slice
func (e EdgeCases) Hostile() []string {
	return slices.Concat(e.SpecialCharacters, e.Unicode, e.SQLInjection, e.XSS)
}

func (b Bundle) clone() Bundle {
	out := b
	out.Products = slices.Clone(b.Products)
	out.SearchTerms = SearchTerms{
		Valid:             slices.Clone(b.SearchTerms.Valid),
		Invalid:           slices.Clone(b.SearchTerms.Invalid),
		SpecialCharacters: slices.Clone(b.SearchTerms.SpecialCharacters),
	}
	out.Categories = make([]Category, len(b.Categories))
	for i, c := range b.Categories {
		out.Categories[i] = Category{Parent: c.Parent, Subcategories: slices.Clone(c.Subcategories)}
	}
	out.Brands = slices.Clone(b.Brands)
	out.PopularBrands = slices.Clone(b.PopularBrands)
	out.EdgeCases = EdgeCases{
		EmptyStrings:      slices.Clone(b.EdgeCases.EmptyStrings),
		SpecialCharacters: slices.Clone(b.EdgeCases.SpecialCharacters),
		Unicode:           slices.Clone(b.EdgeCases.Unicode),
		VeryLong:          slices.Clone(b.EdgeCases.VeryLong),
		SQLInjection:      slices.Clone(b.EdgeCases.SQLInjection),
		XSS:               slices.Clone(b.EdgeCases.XSS),
	}
	return out
}
