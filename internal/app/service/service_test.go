package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/mrops-br/storefront-api/internal/app/dto"
	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/mrops-br/storefront-api/internal/infrastructure/repository/memory"
	"github.com/mrops-br/storefront-api/internal/infrastructure/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	testTracer = noop.NewTracerProvider().Tracer("test")
	testMeter  = metricnoop.NewMeterProvider().Meter("test")
	testLogger = slog.New(slog.DiscardHandler)
)

type services struct {
	store       *memory.Store
	catalog     *CatalogService
	cart        *CartService
	description *DescriptionService
	admin       *AdminService
}

func newServices(t *testing.T, generator domain.DescriptionGenerator) *services {
	t.Helper()
	store := memory.NewStore(context.Background(),
		storage.NewAdapter(storage.NewMemorySlots(), testTracer, testLogger),
		testTracer, testLogger)

	catalog := NewCatalogService(store, testTracer, testMeter, testLogger)
	description := NewDescriptionService(generator, testTracer, testMeter, testLogger)

	return &services{
		store:       store,
		catalog:     catalog,
		cart:        NewCartService(store, testTracer, testMeter, testLogger),
		description: description,
		admin:       NewAdminService(store, catalog, description, testTracer, testLogger),
	}
}

func TestCatalogCreateGeneratesID(t *testing.T) {
	svc := newServices(t, nil)
	ctx := context.Background()

	created, err := svc.catalog.CreateProduct(ctx, &dto.ProductRequest{
		Name:     "Silk Scarf",
		Price:    decimal.RequireFromString("35"),
		Quantity: 4,
		Category: "Fashion",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := svc.catalog.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Silk Scarf", got.Name)
}

func TestCatalogCreateValidation(t *testing.T) {
	svc := newServices(t, nil)
	ctx := context.Background()

	_, err := svc.catalog.CreateProduct(ctx, &dto.ProductRequest{Name: "", Category: "Art"})
	assert.ErrorIs(t, err, domain.ErrInvalidProductName)

	_, err = svc.catalog.CreateProduct(ctx, &dto.ProductRequest{Name: "X", Category: "Garden"})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	_, err = svc.catalog.CreateProduct(ctx, &dto.ProductRequest{ID: "1", Name: "X", Category: "Art"})
	assert.ErrorIs(t, err, domain.ErrProductConflict)

	assert.Len(t, svc.catalog.ListProducts(ctx, ""), 4)
}

func TestCatalogListFilters(t *testing.T) {
	svc := newServices(t, nil)
	ctx := context.Background()

	assert.Len(t, svc.catalog.ListProducts(ctx, "All"), 4)
	electronics := svc.catalog.ListProducts(ctx, "Electronics")
	require.Len(t, electronics, 1)
	assert.Equal(t, "3", electronics[0].ID)
}

func TestCatalogUpdateAndDelete(t *testing.T) {
	svc := newServices(t, nil)
	ctx := context.Background()

	_, err := svc.catalog.UpdateProduct(ctx, "missing", &dto.ProductRequest{Name: "X", Category: "Art"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	updated, err := svc.catalog.UpdateProduct(ctx, "2", &dto.ProductRequest{
		Name:     "Blue Vase",
		Price:    decimal.NewFromInt(50),
		Category: "Art",
	})
	require.NoError(t, err)
	assert.Equal(t, "2", updated.ID)

	_, err = svc.cart.AddToCart(ctx, "2", 1)
	require.NoError(t, err)

	require.NoError(t, svc.catalog.DeleteProduct(ctx, "2"))
	assert.ErrorIs(t, svc.catalog.DeleteProduct(ctx, "2"), domain.ErrProductNotFound)
	assert.Empty(t, svc.cart.GetCart(ctx).Items)
}

func TestCartService(t *testing.T) {
	svc := newServices(t, nil)
	ctx := context.Background()

	_, err := svc.cart.AddToCart(ctx, "missing", 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = svc.cart.AddToCart(ctx, "4", 2)
	require.NoError(t, err)
	cart, err := svc.cart.AddToCart(ctx, "2", 1)
	require.NoError(t, err)

	assert.Equal(t, 3, cart.Count)
	assert.True(t, cart.Total.Equal(decimal.RequireFromString("104.98")))

	cart = svc.cart.UpdateQuantity(ctx, "4", 0)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "2", cart.Items[0].ID)

	cart = svc.cart.RemoveFromCart(ctx, "2")
	assert.Empty(t, cart.Items)

	_, _ = svc.cart.AddToCart(ctx, "1", 1)
	assert.ErrorIs(t, svc.cart.Checkout(ctx), domain.ErrCheckoutUnavailable)
	assert.Len(t, svc.cart.GetCart(ctx).Items, 1, "checkout leaves the cart alone")

	cart = svc.cart.ClearCart(ctx)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Total.IsZero())
}

type stubGenerator struct {
	text string
	err  error
}

func (g stubGenerator) GenerateDescription(context.Context, string, domain.Category, decimal.Decimal) (string, error) {
	return g.text, g.err
}

func TestDescriptionFallbacks(t *testing.T) {
	tests := []struct {
		name      string
		generator domain.DescriptionGenerator
		want      string
	}{
		{"not configured", nil, FallbackUnavailable},
		{"failure", stubGenerator{err: errors.New("boom")}, FallbackError},
		{"empty", stubGenerator{}, FallbackEmpty},
		{"success", stubGenerator{text: "Soft light."}, "Soft light."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newServices(t, tt.generator)
			got := svc.description.Generate(context.Background(), "Lamp", domain.CategoryHome, decimal.NewFromInt(10))
			assert.Equal(t, tt.want, got)
		})
	}
}

// blockingGenerator holds each call until released or cancelled
type blockingGenerator struct {
	started chan struct{}
	release chan string
}

func newBlockingGenerator() *blockingGenerator {
	return &blockingGenerator{
		started: make(chan struct{}, 1),
		release: make(chan string, 1),
	}
}

func (g *blockingGenerator) GenerateDescription(ctx context.Context, _ string, _ domain.Category, _ decimal.Decimal) (string, error) {
	g.started <- struct{}{}
	select {
	case text := <-g.release:
		return text, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

type generation struct {
	draft *dto.DraftResponse
	err   error
}

func startGeneration(svc *services) <-chan generation {
	done := make(chan generation, 1)
	go func() {
		draft, err := svc.admin.GenerateDescription(context.Background())
		done <- generation{draft, err}
	}()
	return done
}

func fillDraft(t *testing.T, svc *services) {
	t.Helper()
	_, err := svc.admin.UpdateDraft(context.Background(), &dto.DraftRequest{
		Name:     "Lamp",
		Price:    decimal.NewNullDecimal(decimal.NewFromInt(20)),
		Category: "Home",
	})
	require.NoError(t, err)
}

func TestAdminGenerateRequiresNameAndPrice(t *testing.T) {
	svc := newServices(t, stubGenerator{text: "x"})

	_, err := svc.admin.GenerateDescription(context.Background())
	assert.ErrorIs(t, err, domain.ErrDraftIncomplete)
}

func TestAdminGenerateApplies(t *testing.T) {
	gen := newBlockingGenerator()
	svc := newServices(t, gen)
	fillDraft(t, svc)

	done := startGeneration(svc)
	<-gen.started

	assert.True(t, svc.admin.Draft().Generating)
	_, err := svc.admin.GenerateDescription(context.Background())
	assert.ErrorIs(t, err, domain.ErrGenerationInFlight)

	gen.release <- "Warm and quiet."
	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, "Warm and quiet.", res.draft.Description)
	assert.False(t, res.draft.Generating)
	assert.Equal(t, "Warm and quiet.", svc.admin.Draft().Description)
}

func TestAdminResetDiscardsStaleGeneration(t *testing.T) {
	gen := newBlockingGenerator()
	svc := newServices(t, gen)
	fillDraft(t, svc)

	done := startGeneration(svc)
	<-gen.started

	svc.admin.Reset(context.Background())

	res := <-done
	assert.ErrorIs(t, res.err, domain.ErrStaleGeneration)
	assert.Empty(t, svc.admin.Draft().Description)
	assert.Empty(t, svc.admin.Draft().Name)
}

func TestAdminEditDiscardsStaleGeneration(t *testing.T) {
	gen := newBlockingGenerator()
	svc := newServices(t, gen)
	fillDraft(t, svc)

	done := startGeneration(svc)
	<-gen.started

	draft, err := svc.admin.Edit(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "2", draft.EditingID)

	res := <-done
	assert.ErrorIs(t, res.err, domain.ErrStaleGeneration)
	assert.Equal(t, domain.DefaultProducts()[1].Description, svc.admin.Draft().Description)
}

func TestAdminGenerateCancelledByCaller(t *testing.T) {
	gen := newBlockingGenerator()
	svc := newServices(t, gen)
	fillDraft(t, svc)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := svc.admin.GenerateDescription(ctx)
		done <- err
	}()
	<-gen.started
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)

	draft := svc.admin.Draft()
	assert.False(t, draft.Generating)
	assert.Empty(t, draft.Description)
	assert.Equal(t, "Lamp", draft.Name)

	gen.release <- "Second try."
	res := <-startGeneration(svc)
	require.NoError(t, res.err)
	assert.Equal(t, "Second try.", res.draft.Description)
}

func TestAdminSubmitCreates(t *testing.T) {
	svc := newServices(t, nil)
	ctx := context.Background()
	fillDraft(t, svc)

	product, err := svc.admin.Submit(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, domain.DefaultImage, product.Image)

	assert.Len(t, svc.catalog.ListProducts(ctx, ""), 5)
	assert.Empty(t, svc.admin.Draft().Name, "draft is reset after submit")
}

func TestAdminSubmitUpdates(t *testing.T) {
	svc := newServices(t, nil)
	ctx := context.Background()

	draft, err := svc.admin.Edit(ctx, "1")
	require.NoError(t, err)

	_, err = svc.admin.UpdateDraft(ctx, &dto.DraftRequest{
		Name:     "Desk Lamp II",
		Price:    draft.Price,
		Quantity: draft.Quantity,
		Category: draft.Category,
		Image:    draft.Image,
	})
	require.NoError(t, err)

	product, err := svc.admin.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", product.ID)

	got, err := svc.catalog.GetProduct(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp II", got.Name)
	assert.Len(t, svc.catalog.ListProducts(ctx, ""), 4)
}

func TestAdminSubmitEditedProductDeleted(t *testing.T) {
	svc := newServices(t, nil)
	ctx := context.Background()

	_, err := svc.admin.Edit(ctx, "3")
	require.NoError(t, err)
	require.NoError(t, svc.catalog.DeleteProduct(ctx, "3"))

	_, err = svc.admin.Submit(ctx)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Equal(t, "3", svc.admin.Draft().EditingID, "failed submit keeps the draft")
}
