package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// productRecord is the stored shape of a product
type productRecord struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
}

// cartItemRecord is the stored shape of a cart line
type cartItemRecord struct {
	productRecord
	CartQuantity int `json:"cartQuantity"`
}

func toRecord(p domain.Product) productRecord {
	return productRecord{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Description: p.Description,
		Category:    string(p.Category),
		Image:       p.Image,
	}
}

func (r productRecord) toDomain() domain.Product {
	return domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Price:       r.Price,
		Quantity:    r.Quantity,
		Description: r.Description,
		Category:    domain.Category(r.Category),
		Image:       r.Image,
	}
}

// Adapter implements domain.SnapshotStore on top of Slots
type Adapter struct {
	slots  Slots
	tracer trace.Tracer
	logger *slog.Logger
}

// NewAdapter creates a snapshot adapter over the given slots
func NewAdapter(slots Slots, tracer trace.Tracer, logger *slog.Logger) *Adapter {
	return &Adapter{
		slots:  slots,
		tracer: tracer,
		logger: logger,
	}
}

// LoadProducts reads the products slot
func (a *Adapter) LoadProducts(ctx context.Context) ([]domain.Product, bool) {
	var records []productRecord
	if !a.load(ctx, ProductsSlot, &records) {
		return nil, false
	}

	products := make([]domain.Product, len(records))
	for i, r := range records {
		products[i] = r.toDomain()
	}
	return products, true
}

// LoadCart reads the cart slot
func (a *Adapter) LoadCart(ctx context.Context) ([]domain.CartItem, bool) {
	var records []cartItemRecord
	if !a.load(ctx, CartSlot, &records) {
		return nil, false
	}

	items := make([]domain.CartItem, 0, len(records))
	for _, r := range records {
		if r.CartQuantity <= 0 {
			a.logger.WarnContext(ctx, "Dropping stored cart line with non-positive quantity",
				slog.String("product_id", r.ID),
				slog.Int("quantity", r.CartQuantity),
			)
			continue
		}
		items = append(items, domain.CartItem{Product: r.toDomain(), CartQuantity: r.CartQuantity})
	}
	return items, true
}

// SaveProducts overwrites the products slot
func (a *Adapter) SaveProducts(ctx context.Context, products []domain.Product) {
	records := make([]productRecord, len(products))
	for i, p := range products {
		records[i] = toRecord(p)
	}
	a.save(ctx, ProductsSlot, records)
}

// SaveCart overwrites the cart slot
func (a *Adapter) SaveCart(ctx context.Context, items []domain.CartItem) {
	records := make([]cartItemRecord, len(items))
	for i, item := range items {
		records[i] = cartItemRecord{productRecord: toRecord(item.Product), CartQuantity: item.CartQuantity}
	}
	a.save(ctx, CartSlot, records)
}

// load decodes the slot into v; a missing, null or unparseable slot is
// reported as not ok
func (a *Adapter) load(ctx context.Context, slot string, v any) bool {
	ctx, span := a.tracer.Start(ctx, "Storage.Load")
	defer span.End()

	span.SetAttributes(attribute.String("storage.slot", slot))

	data, err := a.slots.Get(ctx, slot)
	if errors.Is(err, ErrSlotNotFound) {
		a.logger.DebugContext(ctx, "Slot is empty", slog.String("slot", slot))
		return false
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to read slot")
		a.logger.WarnContext(ctx, "Failed to read slot",
			slog.String("slot", slot),
			slog.String("error", err.Error()),
		)
		return false
	}

	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || string(raw) == "null" {
		a.logger.WarnContext(ctx, "Ignoring unparseable slot", slog.String("slot", slot))
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		span.RecordError(err)
		a.logger.WarnContext(ctx, "Ignoring unparseable slot",
			slog.String("slot", slot),
			slog.String("error", err.Error()),
		)
		return false
	}

	span.SetStatus(codes.Ok, "Slot loaded")
	return true
}

// save never reports failure to the caller; the latest snapshot is simply lost
func (a *Adapter) save(ctx context.Context, slot string, v any) {
	ctx, span := a.tracer.Start(ctx, "Storage.Save")
	defer span.End()

	span.SetAttributes(attribute.String("storage.slot", slot))

	data, err := json.Marshal(v)
	if err == nil {
		err = a.slots.Put(ctx, slot, data)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save slot")
		a.logger.WarnContext(ctx, "Failed to save slot",
			slog.String("slot", slot),
			slog.String("error", err.Error()),
		)
		return
	}

	span.SetAttributes(attribute.Int("storage.bytes", len(data)))
	span.SetStatus(codes.Ok, "Slot saved")
}
