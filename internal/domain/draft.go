package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrDraftIncomplete    = errors.New("enter a name and price first")
	ErrGenerationInFlight = errors.New("a description is already being generated")
	ErrStaleGeneration    = errors.New("draft changed while the description was generated")
)

// DefaultImage is used when a product is saved without an image
const DefaultImage = "https://picsum.photos/400/400"

// Draft is the admin form: a product being created, or edited when
// EditingID is set. Price is null until entered.
type Draft struct {
	EditingID   string
	Name        string
	Price       decimal.NullDecimal
	Quantity    int
	Category    Category
	Description string
	Image       string
}

// NewDraft returns an empty form
func NewDraft() Draft {
	return Draft{Category: CategoryHome}
}

// DraftFromProduct loads a product into the form for editing
func DraftFromProduct(p Product) Draft {
	return Draft{
		EditingID:   p.ID,
		Name:        p.Name,
		Price:       decimal.NewNullDecimal(p.Price),
		Quantity:    p.Quantity,
		Category:    p.Category,
		Description: p.Description,
		Image:       p.Image,
	}
}

// CanDescribe reports whether the draft has enough input for generation
func (d Draft) CanDescribe() bool {
	return d.Name != "" && d.Price.Valid
}

// Product builds the record to save under the given ID
func (d Draft) Product(id string) Product {
	image := d.Image
	if image == "" {
		image = DefaultImage
	}
	return Product{
		ID:          id,
		Name:        d.Name,
		Price:       d.Price.Decimal,
		Quantity:    d.Quantity,
		Category:    d.Category,
		Description: d.Description,
		Image:       image,
	}
}
