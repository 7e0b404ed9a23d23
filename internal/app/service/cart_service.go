package service

import (
	"context"
	"log/slog"

	"github.com/mrops-br/storefront-api/internal/app/dto"
	"github.com/mrops-br/storefront-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CartService handles cart review use cases
type CartService struct {
	store          domain.Store
	tracer         trace.Tracer
	logger         *slog.Logger
	cartOperations metric.Int64Counter
}

// NewCartService creates a new cart service and registers the cart.items
// gauge, observed from the store on every collection
func NewCartService(
	store domain.Store,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *CartService {
	cartOperations, _ := meter.Int64Counter(
		"cart.operations",
		metric.WithDescription("Total number of cart operations"),
	)

	_, err := meter.Int64ObservableGauge(
		"cart.items",
		metric.WithDescription("Number of units currently in the cart"),
		metric.WithUnit("{item}"),
		metric.WithInt64Callback(func(ctx context.Context, o metric.Int64Observer) error {
			o.Observe(int64(store.CartCount(ctx)))
			return nil
		}),
	)
	if err != nil {
		logger.Warn("Failed to register cart gauge", slog.String("error", err.Error()))
	}

	return &CartService{
		store:          store,
		tracer:         tracer,
		logger:         logger,
		cartOperations: cartOperations,
	}
}

func (s *CartService) record(ctx context.Context, operation, result string) {
	s.cartOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}

// GetCart returns the lines with count and total derived from them
func (s *CartService) GetCart(ctx context.Context) *dto.CartResponse {
	ctx, span := s.tracer.Start(ctx, "CartService.GetCart")
	defer span.End()

	resp := dto.ToCartResponse(s.store.Cart(ctx))

	span.SetAttributes(
		attribute.Int("cart.lines", len(resp.Items)),
		attribute.Int("cart.count", resp.Count),
		attribute.String("cart.total", resp.Total.String()),
	)
	s.record(ctx, "read", "success")

	return resp
}

// AddToCart adds quantity units of a catalog product
func (s *CartService) AddToCart(ctx context.Context, productID string, quantity int) (*dto.CartResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddToCart")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.id", productID),
		attribute.Int("cart.quantity_delta", quantity),
	)

	product, ok := s.store.Product(ctx, productID)
	if !ok {
		span.RecordError(domain.ErrProductNotFound)
		span.SetStatus(codes.Error, "Product not found")
		s.logger.WarnContext(ctx, "Cannot add unknown product to cart",
			slog.String("product_id", productID),
		)
		s.record(ctx, "add", "not_found")
		return nil, domain.ErrProductNotFound
	}

	s.store.AddToCart(ctx, product, quantity)
	s.record(ctx, "add", "success")

	span.SetStatus(codes.Ok, "Product added to cart")
	return dto.ToCartResponse(s.store.Cart(ctx)), nil
}

// UpdateQuantity sets a line's quantity; zero or below removes the line.
// Unknown IDs leave the cart unchanged.
func (s *CartService) UpdateQuantity(ctx context.Context, productID string, quantity int) *dto.CartResponse {
	ctx, span := s.tracer.Start(ctx, "CartService.UpdateQuantity")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.id", productID),
		attribute.Int("cart.quantity", quantity),
	)

	s.store.UpdateCartQuantity(ctx, productID, quantity)
	s.record(ctx, "update", "success")

	return dto.ToCartResponse(s.store.Cart(ctx))
}

// RemoveFromCart deletes a line; unknown IDs are ignored
func (s *CartService) RemoveFromCart(ctx context.Context, productID string) *dto.CartResponse {
	ctx, span := s.tracer.Start(ctx, "CartService.RemoveFromCart")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", productID))

	s.store.RemoveFromCart(ctx, productID)
	s.record(ctx, "remove", "success")

	return dto.ToCartResponse(s.store.Cart(ctx))
}

// ClearCart empties the cart
func (s *CartService) ClearCart(ctx context.Context) *dto.CartResponse {
	ctx, span := s.tracer.Start(ctx, "CartService.ClearCart")
	defer span.End()

	s.store.ClearCart(ctx)
	s.record(ctx, "clear", "success")

	return dto.ToCartResponse(s.store.Cart(ctx))
}

// Checkout is not implemented; the cart is left as is
func (s *CartService) Checkout(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "CartService.Checkout")
	defer span.End()

	s.logger.InfoContext(ctx, "Checkout requested",
		slog.Int("count", s.store.CartCount(ctx)),
		slog.String("total", s.store.TotalCartAmount(ctx).String()),
	)
	s.record(ctx, "checkout", "unavailable")

	span.SetStatus(codes.Error, "Checkout unavailable")
	return domain.ErrCheckoutUnavailable
}
