package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidProductName     = errors.New("product name is required")
	ErrInvalidProductPrice    = errors.New("product price must not be negative")
	ErrInvalidProductQuantity = errors.New("product quantity must not be negative")
	ErrInvalidCategory        = errors.New("unknown product category")
)

// Category is one of the fixed product categories
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryFashion     Category = "Fashion"
	CategoryHome        Category = "Home"
	CategoryBeauty      Category = "Beauty"
	CategoryArt         Category = "Art"
)

// CategoryAll is the browse filter keyword matching every category
const CategoryAll = "All"

// Categories returns the categories in display order
func Categories() []Category {
	return []Category{
		CategoryElectronics,
		CategoryFashion,
		CategoryHome,
		CategoryBeauty,
		CategoryArt,
	}
}

// ParseCategory matches a category name case-insensitively
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

// Valid reports whether c is one of the fixed categories
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Product represents a sellable catalog entry
type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Quantity    int
	Description string
	Category    Category
	Image       string
}

// Validate performs business validation on the product
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidProductName
	}
	if p.Price.IsNegative() {
		return ErrInvalidProductPrice
	}
	if p.Quantity < 0 {
		return ErrInvalidProductQuantity
	}
	if !p.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

// FilterByCategory returns the products in the given category.
// An empty filter or CategoryAll matches everything.
func FilterByCategory(products []Product, category string) []Product {
	if category == "" || strings.EqualFold(category, CategoryAll) {
		return products
	}

	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.EqualFold(string(p.Category), category) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
