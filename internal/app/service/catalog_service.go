package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mrops-br/storefront-api/internal/app/dto"
	"github.com/mrops-br/storefront-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CatalogService handles product use cases
type CatalogService struct {
	store                 domain.Store
	tracer                trace.Tracer
	logger                *slog.Logger
	productCreatedCounter metric.Int64Counter
	catalogOperations     metric.Int64Counter
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	store domain.Store,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *CatalogService {
	productCreatedCounter, _ := meter.Int64Counter(
		"products.created.total",
		metric.WithDescription("Total number of products created"),
	)

	catalogOperations, _ := meter.Int64Counter(
		"catalog.operations",
		metric.WithDescription("Total number of catalog operations"),
	)

	return &CatalogService{
		store:                 store,
		tracer:                tracer,
		logger:                logger,
		productCreatedCounter: productCreatedCounter,
		catalogOperations:     catalogOperations,
	}
}

func (s *CatalogService) record(ctx context.Context, operation, result string) {
	s.catalogOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}

// ListProducts returns the catalog filtered by category ("" or "All" for everything)
func (s *CatalogService) ListProducts(ctx context.Context, category string) []*dto.ProductResponse {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListProducts")
	defer span.End()

	span.SetAttributes(attribute.String("product.category", category))

	products := domain.FilterByCategory(s.store.Products(ctx), category)

	span.SetAttributes(attribute.Int("product.count", len(products)))
	s.record(ctx, "list", "success")

	s.logger.InfoContext(ctx, "Products listed",
		slog.String("category", category),
		slog.Int("count", len(products)),
	)

	return dto.ToProductResponseList(products)
}

// GetProduct retrieves a product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	product, ok := s.store.Product(ctx, id)
	if !ok {
		span.RecordError(domain.ErrProductNotFound)
		span.SetStatus(codes.Error, "Product not found")
		s.logger.WarnContext(ctx, "Product not found",
			slog.String("product_id", id),
		)
		s.record(ctx, "read", "not_found")
		return nil, domain.ErrProductNotFound
	}

	s.record(ctx, "read", "success")
	span.SetStatus(codes.Ok, "Product retrieved successfully")
	return dto.ToProductResponse(product), nil
}

// CreateProduct validates and adds a product. An empty ID gets a generated one.
func (s *CatalogService) CreateProduct(ctx context.Context, req *dto.ProductRequest) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CreateProduct")
	defer span.End()

	id := req.ID
	if id == "" {
		id = uuid.New().String()
	}

	product := req.ToProduct(id)
	if err := s.Create(ctx, product); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create product")
		return nil, err
	}

	span.SetStatus(codes.Ok, "Product created successfully")
	return dto.ToProductResponse(product), nil
}

// Create validates and stores a fully formed product
func (s *CatalogService) Create(ctx context.Context, product domain.Product) error {
	s.logger.InfoContext(ctx, "Creating product",
		slog.String("product_id", product.ID),
		slog.String("name", product.Name),
		slog.String("price", product.Price.String()),
	)

	if err := product.Validate(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to create product",
			slog.String("error", err.Error()),
		)
		s.record(ctx, "create", "failure")
		return err
	}

	if err := s.store.AddProduct(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "Failed to store product",
			slog.String("error", err.Error()),
		)
		s.record(ctx, "create", "failure")
		return err
	}

	s.productCreatedCounter.Add(ctx, 1)
	s.record(ctx, "create", "success")

	s.logger.InfoContext(ctx, "Product created successfully",
		slog.String("product_id", product.ID),
	)
	return nil
}

// UpdateProduct replaces the product with the given ID
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, req *dto.ProductRequest) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.UpdateProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	product := req.ToProduct(id)
	if err := s.Update(ctx, product); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update product")
		return nil, err
	}

	span.SetStatus(codes.Ok, "Product updated successfully")
	return dto.ToProductResponse(product), nil
}

// Update validates and replaces a product
func (s *CatalogService) Update(ctx context.Context, product domain.Product) error {
	if err := product.Validate(); err != nil {
		s.record(ctx, "update", "failure")
		return err
	}

	if !s.store.UpdateProduct(ctx, product) {
		s.logger.WarnContext(ctx, "Product not found",
			slog.String("product_id", product.ID),
		)
		s.record(ctx, "update", "not_found")
		return domain.ErrProductNotFound
	}

	s.record(ctx, "update", "success")
	return nil
}

// DeleteProduct removes a product and its cart line
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.DeleteProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	if !s.store.DeleteProduct(ctx, id) {
		span.RecordError(domain.ErrProductNotFound)
		span.SetStatus(codes.Error, "Product not found")
		s.record(ctx, "delete", "not_found")
		return domain.ErrProductNotFound
	}

	s.record(ctx, "delete", "success")
	s.logger.InfoContext(ctx, "Product deleted successfully",
		slog.String("product_id", id),
	)

	span.SetStatus(codes.Ok, "Product deleted successfully")
	return nil
}
