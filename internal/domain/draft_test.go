package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDraft(t *testing.T) {
	d := NewDraft()
	assert.Equal(t, CategoryHome, d.Category)
	assert.False(t, d.CanDescribe())

	d.Name = "Lamp"
	assert.False(t, d.CanDescribe(), "price is still missing")

	d.Price = decimal.NewNullDecimal(decimal.Zero)
	assert.True(t, d.CanDescribe(), "a zero price counts as entered")

	p := d.Product("42")
	assert.Equal(t, "42", p.ID)
	assert.Equal(t, DefaultImage, p.Image)
}

func TestDraftFromProduct(t *testing.T) {
	p := DefaultProducts()[2]
	d := DraftFromProduct(p)

	assert.Equal(t, p.ID, d.EditingID)
	assert.True(t, d.Price.Valid)
	assert.Equal(t, p, d.Product(d.EditingID))
}
