package models

import (
	"errors"
	"fmt"
	"strings"
)

// UserType is the audience a category is sold to
type UserType string

// User types
const (
	UserTypeWomen UserType = "Women"
	UserTypeMen   UserType = "Men"
	UserTypeKids  UserType = "Kids"
)

// Category is a sub-category within a user type, e.g. Women > Dress
type Category struct {
	UserType UserType
	Name     string
}

// Slug returns the category's path segment, e.g. "Women_Dress"
func (c Category) Slug() string {
	return fmt.Sprintf("%s_%s", c.UserType, strings.ReplaceAll(c.Name, " ", "_"))
}

// Product is one catalogue entry. Price is in whole rupees.
type Product struct {
	ID       int
	Name     string
	Price    int64
	Brand    string
	Category Category
}

// Brand is a brand with its position in the brand list
type Brand struct {
	ID   int
	Name string
}

// Catalogue errors
var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidPrice    = errors.New("product price must be positive")
	ErrEmptyName       = errors.New("product name cannot be empty")
)

// NewProduct creates a product with validation
func NewProduct(id int, name string, price int64, brand string, category Category) (Product, error) {
	if strings.TrimSpace(name) == "" {
		return Product{}, ErrEmptyName
	}
	if price <= 0 {
		return Product{}, ErrInvalidPrice
	}
	return Product{ID: id, Name: name, Price: price, Brand: brand, Category: category}, nil
}

// DisplayPrice returns the price the way the storefront prints it
func (p Product) DisplayPrice() string {
	return FormatPrice(p.Price)
}

// Matches reports whether term occurs in the product's name or category,
// ignoring case. The empty term matches everything.
func (p Product) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range []string{p.Name, p.Category.Name, string(p.Category.UserType)} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// FormatPrice formats a rupee amount as "Rs. N"
func FormatPrice(amount int64) string {
	return fmt.Sprintf("Rs. %d", amount)
}
