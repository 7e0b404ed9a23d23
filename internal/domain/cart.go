package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrCheckoutUnavailable = errors.New("checkout is not available yet")

// CartItem is one cart line: a snapshot of the product taken when it was
// first added, plus the quantity requested for purchase.
type CartItem struct {
	Product
	CartQuantity int
}

// Subtotal is price × cart quantity
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.CartQuantity)))
}

// CartTotal sums the subtotals of all line items
func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// CartCount sums the cart quantities of all line items
func CartCount(items []CartItem) int {
	count := 0
	for _, item := range items {
		count += item.CartQuantity
	}
	return count
}
