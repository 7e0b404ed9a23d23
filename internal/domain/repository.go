package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductConflict = errors.New("product id already exists")
)

// Store defines the contract for the catalog and cart state
type Store interface {
	Products(ctx context.Context) []Product
	Product(ctx context.Context, id string) (Product, bool)
	AddProduct(ctx context.Context, product Product) error
	UpdateProduct(ctx context.Context, product Product) bool
	DeleteProduct(ctx context.Context, id string) bool

	Cart(ctx context.Context) []CartItem
	AddToCart(ctx context.Context, product Product, quantity int)
	RemoveFromCart(ctx context.Context, id string)
	UpdateCartQuantity(ctx context.Context, id string, quantity int)
	ClearCart(ctx context.Context)
	TotalCartAmount(ctx context.Context) decimal.Decimal
	CartCount(ctx context.Context) int
}

// SnapshotStore persists full collection snapshots. Saves are best-effort
// and never fail the caller; loads report ok=false when nothing usable is
// stored.
type SnapshotStore interface {
	LoadProducts(ctx context.Context) ([]Product, bool)
	LoadCart(ctx context.Context) ([]CartItem, bool)
	SaveProducts(ctx context.Context, products []Product)
	SaveCart(ctx context.Context, items []CartItem)
}

// DescriptionGenerator produces marketing copy for a product
type DescriptionGenerator interface {
	GenerateDescription(ctx context.Context, name string, category Category, price decimal.Decimal) (string, error)
}
