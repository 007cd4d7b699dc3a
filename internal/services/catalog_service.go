package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/themizzi/shopcheck/internal/models"
)

// CatalogService answers catalogue queries
type CatalogService interface {
	ListProducts() []models.Product
	SearchProducts(term string) []models.Product
	GetProduct(id int) (models.Product, error)
	ProductsInCategory(slug string) (models.Category, []models.Product, error)
	ProductsByBrand(brand string) []models.Product
	ListBrands() []models.Brand
	Categories() []models.Category
}

// CatalogServiceImpl implements CatalogService over a fixed product list
type CatalogServiceImpl struct {
	products []models.Product
	brands   []models.Brand
}

// NewCatalogService creates a catalogue over products and brands
func NewCatalogService(products []models.Product, brands []models.Brand) CatalogService {
	return &CatalogServiceImpl{
		products: slices.Clone(products),
		brands:   slices.Clone(brands),
	}
}

// NewDefaultCatalogService creates a catalogue holding the storefront's
// sample products
func NewDefaultCatalogService() CatalogService {
	return NewCatalogService(DefaultProducts(), DefaultBrands())
}

// ListProducts returns every product
func (s *CatalogServiceImpl) ListProducts() []models.Product {
	return slices.Clone(s.products)
}

// SearchProducts returns the products matching term
func (s *CatalogServiceImpl) SearchProducts(term string) []models.Product {
	return s.filter(func(p models.Product) bool { return p.Matches(term) })
}

// GetProduct returns the product with id
func (s *CatalogServiceImpl) GetProduct(id int) (models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, fmt.Errorf("%w: %d", models.ErrProductNotFound, id)
}

// ProductsInCategory returns the category named by slug and its products
func (s *CatalogServiceImpl) ProductsInCategory(slug string) (models.Category, []models.Product, error) {
	for _, c := range s.Categories() {
		if strings.EqualFold(c.Slug(), slug) {
			return c, s.filter(func(p models.Product) bool { return p.Category == c }), nil
		}
	}
	return models.Category{}, nil, fmt.Errorf("%w: category %q", models.ErrProductNotFound, slug)
}

// ProductsByBrand returns the products of brand, ignoring case
func (s *CatalogServiceImpl) ProductsByBrand(brand string) []models.Product {
	return s.filter(func(p models.Product) bool { return strings.EqualFold(p.Brand, brand) })
}

// ListBrands returns every brand
func (s *CatalogServiceImpl) ListBrands() []models.Brand {
	return slices.Clone(s.brands)
}

// Categories returns the distinct categories in catalogue order
func (s *CatalogServiceImpl) Categories() []models.Category {
	var out []models.Category
	for _, p := range s.products {
		if !slices.Contains(out, p.Category) {
			out = append(out, p.Category)
		}
	}
	return out
}

func (s *CatalogServiceImpl) filter(keep func(models.Product) bool) []models.Product {
	out := []models.Product{}
	for _, p := range s.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// DefaultBrands returns the brands the storefront lists
func DefaultBrands() []models.Brand {
	names := []string{"Polo", "H&M", "Madame", "Mast & Harbour", "Babyhug", "Allen Solly Junior", "Kookie Kids", "Biba"}
	brands := make([]models.Brand, len(names))
	for i, name := range names {
		brands[i] = models.Brand{ID: i + 1, Name: name}
	}
	return brands
}

// DefaultProducts returns the storefront's sample products
func DefaultProducts() []models.Product {
	var (
		womenDress = models.Category{UserType: models.UserTypeWomen, Name: "Dress"}
		womenTops  = models.Category{UserType: models.UserTypeWomen, Name: "Tops"}
		womenSaree = models.Category{UserType: models.UserTypeWomen, Name: "Saree"}
		menTshirts = models.Category{UserType: models.UserTypeMen, Name: "Tshirts"}
		menJeans   = models.Category{UserType: models.UserTypeMen, Name: "Jeans"}
		kidsDress  = models.Category{UserType: models.UserTypeKids, Name: "Dress"}
		kidsShirts = models.Category{UserType: models.UserTypeKids, Name: "Tops & Shirts"}
	)
	return []models.Product{
		{ID: 1, Name: "Blue Top", Price: 500, Brand: "Polo", Category: womenTops},
		{ID: 2, Name: "Men Tshirt", Price: 400, Brand: "H&M", Category: menTshirts},
		{ID: 3, Name: "Sleeveless Dress", Price: 1000, Brand: "Madame", Category: womenDress},
		{ID: 4, Name: "Stylish Dress", Price: 600, Brand: "Madame", Category: womenDress},
		{ID: 5, Name: "Winter Top", Price: 600, Brand: "Mast & Harbour", Category: womenTops},
		{ID: 6, Name: "Summer White Top", Price: 400, Brand: "H&M", Category: womenTops},
		{ID: 7, Name: "Madame Top For Women", Price: 1000, Brand: "Madame", Category: womenTops},
		{ID: 8, Name: "Fancy Green Top", Price: 700, Brand: "Polo", Category: womenTops},
		{ID: 11, Name: "Little Girls Mr. Panda Shirt", Price: 543, Brand: "Allen Solly Junior", Category: kidsShirts},
		{ID: 12, Name: "Sleeveless Unicorn Patch Gown - Pink", Price: 1050, Brand: "Kookie Kids", Category: kidsDress},
		{ID: 13, Name: "Cotton Mull Embroidered Dress", Price: 1500, Brand: "Babyhug", Category: kidsDress},
		{ID: 21, Name: "Soft Stretch Jeans", Price: 799, Brand: "Mast & Harbour", Category: menJeans},
		{ID: 28, Name: "Pure Cotton V-Neck T-Shirt", Price: 1299, Brand: "H&M", Category: menTshirts},
		{ID: 30, Name: "Premium Polo T-Shirts", Price: 1500, Brand: "Polo", Category: menTshirts},
		{ID: 37, Name: "Beautiful Peacock Blue Cotton Linen Saree", Price: 5000, Brand: "Biba", Category: womenSaree},
		{ID: 39, Name: "Rose Pink Embroidered Maxi Dress", Price: 1600, Brand: "Biba", Category: womenDress},
	}
}
