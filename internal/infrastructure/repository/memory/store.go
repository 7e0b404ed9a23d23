package memory

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Store is the in-memory implementation of domain.Store. It owns the
// catalog and the cart and hands a snapshot to the SnapshotStore after
// every mutation that changed a collection.
type Store struct {
	mu       sync.RWMutex
	products []domain.Product
	cart     []domain.CartItem
	snaps    domain.SnapshotStore
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewStore creates a store seeded from the snapshot store, falling back to
// the default catalog and an empty cart
func NewStore(ctx context.Context, snaps domain.SnapshotStore, tracer trace.Tracer, logger *slog.Logger) *Store {
	ctx, span := tracer.Start(ctx, "Store.Load")
	defer span.End()

	s := &Store{
		snaps:  snaps,
		tracer: tracer,
		logger: logger,
	}

	products, ok := snaps.LoadProducts(ctx)
	if !ok {
		logger.InfoContext(ctx, "No stored catalog, using default products")
		products = domain.DefaultProducts()
	}
	var productsRepaired bool
	s.products, productsRepaired = s.uniqueProducts(ctx, products)

	cart, ok := snaps.LoadCart(ctx)
	if !ok {
		cart = []domain.CartItem{}
	}
	var cartRepaired bool
	s.cart, cartRepaired = s.reconcileCart(ctx, cart)

	if productsRepaired {
		snaps.SaveProducts(ctx, slices.Clone(s.products))
	}
	if cartRepaired {
		snaps.SaveCart(ctx, slices.Clone(s.cart))
	}

	span.SetAttributes(
		attribute.Int("product.count", len(s.products)),
		attribute.Int("cart.lines", len(s.cart)),
	)

	logger.InfoContext(ctx, "Store loaded",
		slog.Int("products", len(s.products)),
		slog.Int("cart_lines", len(s.cart)),
	)

	return s
}

// Products returns a copy of the catalog in insertion order
func (s *Store) Products(ctx context.Context) []domain.Product {
	_, span := s.tracer.Start(ctx, "Store.Products")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	span.SetAttributes(attribute.Int("product.count", len(s.products)))
	return slices.Clone(s.products)
}

// Product looks up a catalog entry by ID
func (s *Store) Product(ctx context.Context, id string) (domain.Product, bool) {
	_, span := s.tracer.Start(ctx, "Store.Product")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.productIndex(id)
	if i < 0 {
		span.SetStatus(codes.Error, "Product not found")
		return domain.Product{}, false
	}
	return s.products[i], true
}

// AddProduct appends a product to the catalog. IDs must be unique.
func (s *Store) AddProduct(ctx context.Context, product domain.Product) error {
	ctx, span := s.tracer.Start(ctx, "Store.AddProduct")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.id", product.ID),
		attribute.String("product.name", product.Name),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.productIndex(product.ID) >= 0 {
		span.RecordError(domain.ErrProductConflict)
		span.SetStatus(codes.Error, "Duplicate product id")
		s.logger.WarnContext(ctx, "Product id already in catalog",
			slog.String("product_id", product.ID),
		)
		return domain.ErrProductConflict
	}

	s.products = append(s.products, product)
	s.snaps.SaveProducts(ctx, slices.Clone(s.products))

	s.logger.InfoContext(ctx, "Product added to catalog",
		slog.String("product_id", product.ID),
		slog.String("product_name", product.Name),
	)

	span.SetStatus(codes.Ok, "Product added")
	return nil
}

// UpdateProduct replaces the catalog entry with the same ID. It reports
// whether an entry was replaced; a missing ID is a no-op.
func (s *Store) UpdateProduct(ctx context.Context, product domain.Product) bool {
	ctx, span := s.tracer.Start(ctx, "Store.UpdateProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", product.ID))

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(product.ID)
	if i < 0 {
		s.logger.DebugContext(ctx, "Update skipped, product not in catalog",
			slog.String("product_id", product.ID),
		)
		return false
	}

	s.products[i] = product
	s.snaps.SaveProducts(ctx, slices.Clone(s.products))

	s.logger.InfoContext(ctx, "Product updated",
		slog.String("product_id", product.ID),
	)
	return true
}

// DeleteProduct removes the product and its cart line, if any
func (s *Store) DeleteProduct(ctx context.Context, id string) bool {
	ctx, span := s.tracer.Start(ctx, "Store.DeleteProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i >= 0 {
		s.products = slices.Delete(s.products, i, i+1)
		s.snaps.SaveProducts(ctx, slices.Clone(s.products))
	}

	if j := s.cartIndex(id); j >= 0 {
		s.cart = slices.Delete(s.cart, j, j+1)
		s.snaps.SaveCart(ctx, slices.Clone(s.cart))
		s.logger.InfoContext(ctx, "Removed cart line of deleted product",
			slog.String("product_id", id),
		)
	}

	if i < 0 {
		return false
	}

	s.logger.InfoContext(ctx, "Product deleted",
		slog.String("product_id", id),
	)
	return true
}

// Cart returns a copy of the cart lines in insertion order
func (s *Store) Cart(ctx context.Context) []domain.CartItem {
	_, span := s.tracer.Start(ctx, "Store.Cart")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	span.SetAttributes(attribute.Int("cart.lines", len(s.cart)))
	return slices.Clone(s.cart)
}

// AddToCart merges quantity into the product's line or inserts a new line.
// A line whose quantity would drop to zero or below is removed, and a new
// line is never created with a non-positive quantity.
func (s *Store) AddToCart(ctx context.Context, product domain.Product, quantity int) {
	ctx, span := s.tracer.Start(ctx, "Store.AddToCart")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.id", product.ID),
		attribute.Int("cart.quantity_delta", quantity),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.cartIndex(product.ID); i >= 0 {
		s.setQuantity(ctx, i, s.cart[i].CartQuantity+quantity)
		return
	}

	if quantity <= 0 {
		s.logger.DebugContext(ctx, "Ignoring non-positive quantity for new cart line",
			slog.String("product_id", product.ID),
			slog.Int("quantity", quantity),
		)
		return
	}

	s.cart = append(s.cart, domain.CartItem{Product: product, CartQuantity: quantity})
	s.snaps.SaveCart(ctx, slices.Clone(s.cart))

	s.logger.InfoContext(ctx, "Product added to cart",
		slog.String("product_id", product.ID),
		slog.Int("quantity", quantity),
	)
}

// RemoveFromCart deletes the line for id, if present
func (s *Store) RemoveFromCart(ctx context.Context, id string) {
	ctx, span := s.tracer.Start(ctx, "Store.RemoveFromCart")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.cartIndex(id); i >= 0 {
		s.removeLine(ctx, i)
	}
}

// UpdateCartQuantity sets the line's quantity exactly; zero or below removes it
func (s *Store) UpdateCartQuantity(ctx context.Context, id string, quantity int) {
	ctx, span := s.tracer.Start(ctx, "Store.UpdateCartQuantity")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.id", id),
		attribute.Int("cart.quantity", quantity),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.cartIndex(id); i >= 0 {
		s.setQuantity(ctx, i, quantity)
	}
}

// ClearCart empties the cart
func (s *Store) ClearCart(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "Store.ClearCart")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	span.SetAttributes(attribute.Int("cart.lines", len(s.cart)))

	s.cart = []domain.CartItem{}
	s.snaps.SaveCart(ctx, []domain.CartItem{})

	s.logger.InfoContext(ctx, "Cart cleared")
}

// TotalCartAmount is recomputed from the current lines on every call
func (s *Store) TotalCartAmount(ctx context.Context) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.CartTotal(s.cart)
}

// CartCount is recomputed from the current lines on every call
func (s *Store) CartCount(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.CartCount(s.cart)
}

// setQuantity must be called with mu held
func (s *Store) setQuantity(ctx context.Context, i int, quantity int) {
	if quantity <= 0 {
		s.removeLine(ctx, i)
		return
	}

	s.cart[i].CartQuantity = quantity
	s.snaps.SaveCart(ctx, slices.Clone(s.cart))

	s.logger.DebugContext(ctx, "Cart quantity updated",
		slog.String("product_id", s.cart[i].ID),
		slog.Int("quantity", quantity),
	)
}

// removeLine must be called with mu held
func (s *Store) removeLine(ctx context.Context, i int) {
	id := s.cart[i].ID
	s.cart = slices.Delete(s.cart, i, i+1)
	s.snaps.SaveCart(ctx, slices.Clone(s.cart))

	s.logger.InfoContext(ctx, "Product removed from cart",
		slog.String("product_id", id),
	)
}

func (s *Store) productIndex(id string) int {
	return slices.IndexFunc(s.products, func(p domain.Product) bool { return p.ID == id })
}

func (s *Store) cartIndex(id string) int {
	return slices.IndexFunc(s.cart, func(item domain.CartItem) bool { return item.ID == id })
}

// uniqueProducts keeps the first entry for every ID
func (s *Store) uniqueProducts(ctx context.Context, products []domain.Product) ([]domain.Product, bool) {
	seen := make(map[string]struct{}, len(products))
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if _, dup := seen[p.ID]; dup {
			s.logger.WarnContext(ctx, "Dropping stored product with duplicate id",
				slog.String("product_id", p.ID),
			)
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out, len(out) != len(products)
}

// reconcileCart merges lines sharing a product ID into the first one and
// drops lines whose product is no longer in the catalog. Must run after
// s.products is set.
func (s *Store) reconcileCart(ctx context.Context, cart []domain.CartItem) ([]domain.CartItem, bool) {
	repaired := false
	out := make([]domain.CartItem, 0, len(cart))
	for _, item := range cart {
		if s.productIndex(item.ID) < 0 {
			s.logger.WarnContext(ctx, "Dropping stored cart line for unknown product",
				slog.String("product_id", item.ID),
				slog.Int("quantity", item.CartQuantity),
			)
			repaired = true
			continue
		}
		if i := slices.IndexFunc(out, func(line domain.CartItem) bool { return line.ID == item.ID }); i >= 0 {
			s.logger.WarnContext(ctx, "Merging duplicate stored cart line",
				slog.String("product_id", item.ID),
				slog.Int("quantity", item.CartQuantity),
			)
			out[i].CartQuantity += item.CartQuantity
			repaired = true
			continue
		}
		out = append(out, item)
	}
	return out, repaired
}
