package services

import (
	"fmt"
	"sync"

	"github.com/themizzi/shopcheck/internal/models"
)

// CartService keeps one cart per browser session
type CartService interface {
	GetCart(sessionID string) models.Cart
	AddProduct(sessionID string, productID, quantity int) (models.Cart, error)
	UpdateQuantity(sessionID string, productID, quantity int) (models.Cart, error)
	RemoveProduct(sessionID string, productID int) (models.Cart, error)
	ClearCart(sessionID string)
}

// CartServiceImpl implements CartService in memory
type CartServiceImpl struct {
	catalog CatalogService

	mu    sync.Mutex
	carts map[string]*models.Cart
}

// NewCartService creates a cart service that prices items from catalog
func NewCartService(catalog CatalogService) CartService {
	return &CartServiceImpl{
		catalog: catalog,
		carts:   make(map[string]*models.Cart),
	}
}

// GetCart returns a snapshot of the session's cart; unknown sessions have
// an empty one
func (s *CartServiceImpl) GetCart(sessionID string) models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart(sessionID).Snapshot()
}

// AddProduct adds quantity units of productID to the session's cart
func (s *CartServiceImpl) AddProduct(sessionID string, productID, quantity int) (models.Cart, error) {
	product, err := s.catalog.GetProduct(productID)
	if err != nil {
		return models.Cart{}, fmt.Errorf("failed to add to cart: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.cart(sessionID)
	if err := cart.Add(product, quantity); err != nil {
		return models.Cart{}, fmt.Errorf("failed to add to cart: %w", err)
	}
	return cart.Snapshot(), nil
}

// UpdateQuantity sets the quantity of productID in the session's cart
func (s *CartServiceImpl) UpdateQuantity(sessionID string, productID, quantity int) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.cart(sessionID)
	if err := cart.SetQuantity(productID, quantity); err != nil {
		return models.Cart{}, fmt.Errorf("failed to update cart: %w", err)
	}
	return cart.Snapshot(), nil
}

// RemoveProduct drops productID from the session's cart
func (s *CartServiceImpl) RemoveProduct(sessionID string, productID int) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.cart(sessionID)
	if err := cart.Remove(productID); err != nil {
		return models.Cart{}, fmt.Errorf("failed to remove from cart: %w", err)
	}
	return cart.Snapshot(), nil
}

// ClearCart forgets the session's cart
func (s *CartServiceImpl) ClearCart(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// cart returns the session's cart, creating it. Callers hold s.mu.
func (s *CartServiceImpl) cart(sessionID string) *models.Cart {
	cart, ok := s.carts[sessionID]
	if !ok {
		cart = models.NewCart()
		s.carts[sessionID] = cart
	}
	return cart
}
