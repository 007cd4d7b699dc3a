package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CartLine is one product in a cart with its quantity
type CartLine struct {
	Product  Product
	Quantity int
}

// Total returns price times quantity
func (l CartLine) Total() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// Cart is the basket of one browser session
type Cart struct {
	ID        string
	Lines     []CartLine
	UpdatedAt time.Time
}

// Cart errors
var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrLineNotFound    = errors.New("product is not in the cart")
)

// NewCart creates an empty cart with a fresh id
func NewCart() *Cart {
	return &Cart{
		ID:        uuid.New().String(),
		UpdatedAt: time.Now(),
	}
}

// Add puts quantity units of p in the cart, merging with an existing line
func (c *Cart) Add(p Product, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	if i := c.indexOf(p.ID); i >= 0 {
		c.Lines[i].Quantity += quantity
	} else {
		c.Lines = append(c.Lines, CartLine{Product: p, Quantity: quantity})
	}
	c.UpdatedAt = time.Now()
	return nil
}

// SetQuantity replaces the quantity of productID's line
func (c *Cart) SetQuantity(productID, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	i := c.indexOf(productID)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrLineNotFound, productID)
	}
	c.Lines[i].Quantity = quantity
	c.UpdatedAt = time.Now()
	return nil
}

// Remove drops productID's line
func (c *Cart) Remove(productID int) error {
	i := c.indexOf(productID)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrLineNotFound, productID)
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	c.UpdatedAt = time.Now()
	return nil
}

// Line returns productID's line
func (c *Cart) Line(productID int) (CartLine, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.Lines[i], true
	}
	return CartLine{}, false
}

// Total returns the sum of all line totals
func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Total()
	}
	return total
}

// IsEmpty returns true if the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Snapshot returns a copy safe to read while the cart changes
func (c *Cart) Snapshot() Cart {
	out := *c
	out.Lines = append([]CartLine(nil), c.Lines...)
	return out
}

func (c *Cart) indexOf(productID int) int {
	for i, l := range c.Lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}
