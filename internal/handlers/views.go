package handlers

import (
	"fmt"

	"github.com/themizzi/shopcheck/internal/models"
	"github.com/themizzi/shopcheck/internal/services"
)

// pageData is the single data shape every page template receives
type pageData struct {
	Title string
	User  *services.SessionUser

	Heading    string
	Search     string
	Products   []productView
	Categories []categoryGroup
	Brands     []brandView
	Product    productView

	Lines []lineView
	Total string

	LoginEmail  string
	LoginError  string
	SignupName  string
	SignupEmail string
	SignupError string

	MessageQA  string
	Paragraphs []string
}

type productView struct {
	ID       int
	Name     string
	Price    string
	Brand    string
	Category string
}

type categoryGroup struct {
	UserType   models.UserType
	Categories []models.Category
}

type brandView struct {
	Name  string
	Count int
}

type lineView struct {
	ID       int
	Name     string
	Price    string
	Category string
	Quantity int
	Total    string
}

func newProductView(p models.Product) productView {
	return productView{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.DisplayPrice(),
		Brand:    p.Brand,
		Category: fmt.Sprintf("%s > %s", p.Category.UserType, p.Category.Name),
	}
}

func productViews(products []models.Product) []productView {
	out := make([]productView, len(products))
	for i, p := range products {
		out[i] = newProductView(p)
	}
	return out
}

func lineViews(cart models.Cart) []lineView {
	out := make([]lineView, len(cart.Lines))
	for i, l := range cart.Lines {
		p := newProductView(l.Product)
		out[i] = lineView{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Category: p.Category,
			Quantity: l.Quantity,
			Total:    models.FormatPrice(l.Total()),
		}
	}
	return out
}

// groupCategories groups categories by user type, keeping first-seen order
func groupCategories(categories []models.Category) []categoryGroup {
	var groups []categoryGroup
	index := map[models.UserType]int{}
	for _, c := range categories {
		i, ok := index[c.UserType]
		if !ok {
			i = len(groups)
			index[c.UserType] = i
			groups = append(groups, categoryGroup{UserType: c.UserType})
		}
		groups[i].Categories = append(groups[i].Categories, c)
	}
	return groups
}
