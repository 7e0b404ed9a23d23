package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/mrops-br/storefront-api/internal/app/dto"
	"github.com/mrops-br/storefront-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// AdminService owns the admin form draft.
//
// Description generation runs outside the lock. Each run takes a token; a
// result is written into the draft only if no Reset, Edit or Submit happened
// in the meantime. Those operations bump the token and cancel the run.
type AdminService struct {
	mu       sync.Mutex
	draft    domain.Draft
	token    uint64
	inFlight bool
	cancel   context.CancelFunc

	store     domain.Store
	catalog   *CatalogService
	describer *DescriptionService
	tracer    trace.Tracer
	logger    *slog.Logger
}

func NewAdminService(
	store domain.Store,
	catalog *CatalogService,
	describer *DescriptionService,
	tracer trace.Tracer,
	logger *slog.Logger,
) *AdminService {
	return &AdminService{
		draft:     domain.NewDraft(),
		store:     store,
		catalog:   catalog,
		describer: describer,
		tracer:    tracer,
		logger:    logger,
	}
}

// Draft returns the current form state
func (s *AdminService) Draft() *dto.DraftResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.view()
}

// UpdateDraft replaces the editable fields. An in-flight generation is kept.
func (s *AdminService) UpdateDraft(ctx context.Context, req *dto.DraftRequest) (*dto.DraftResponse, error) {
	category := domain.CategoryHome
	if req.Category != "" {
		c, err := domain.ParseCategory(req.Category)
		if err != nil {
			return nil, err
		}
		category = c
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft = domain.Draft{
		EditingID:   s.draft.EditingID,
		Name:        req.Name,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    category,
		Description: req.Description,
		Image:       req.Image,
	}

	s.logger.DebugContext(ctx, "Draft updated",
		slog.String("editing_id", s.draft.EditingID),
	)
	return s.view(), nil
}

// Edit loads a catalog product into the draft
func (s *AdminService) Edit(ctx context.Context, id string) (*dto.DraftResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AdminService.Edit")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	product, ok := s.store.Product(ctx, id)
	if !ok {
		span.SetStatus(codes.Error, "Product not found")
		return nil, domain.ErrProductNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.invalidate()
	s.draft = domain.DraftFromProduct(product)

	s.logger.InfoContext(ctx, "Editing product", slog.String("product_id", id))
	return s.view(), nil
}

// Reset clears the draft and abandons any in-flight generation
func (s *AdminService) Reset(ctx context.Context) *dto.DraftResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invalidate()
	s.draft = domain.NewDraft()

	s.logger.DebugContext(ctx, "Draft reset")
	return s.view()
}

// GenerateDescription asks the generator for copy and writes it into the
// draft if the draft was not reset or repurposed while waiting
func (s *AdminService) GenerateDescription(ctx context.Context) (*dto.DraftResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AdminService.GenerateDescription")
	defer span.End()

	s.mu.Lock()
	if !s.draft.CanDescribe() {
		s.mu.Unlock()
		return nil, domain.ErrDraftIncomplete
	}
	if s.inFlight {
		s.mu.Unlock()
		return nil, domain.ErrGenerationInFlight
	}

	s.token++
	token := s.token
	genCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.inFlight = true
	name, category, price := s.draft.Name, s.draft.Category, s.draft.Price.Decimal
	s.mu.Unlock()

	span.SetAttributes(attribute.Int64("draft.token", int64(token)))

	text := s.describer.Generate(genCtx, name, category, price)
	cancelled := genCtx.Err() != nil
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.token {
		span.SetStatus(codes.Error, "Stale generation")
		s.logger.InfoContext(ctx, "Discarding description for a stale draft",
			slog.Int64("token", int64(token)),
		)
		return nil, domain.ErrStaleGeneration
	}

	s.inFlight = false
	s.cancel = nil

	if cancelled {
		s.logger.InfoContext(ctx, "Description request abandoned by caller",
			slog.Int64("token", int64(token)),
		)
		span.SetStatus(codes.Error, "Generation cancelled")
		return nil, ctx.Err()
	}

	s.draft.Description = text
	span.SetStatus(codes.Ok, "Description applied")
	return s.view(), nil
}

// Submit saves the draft as a new product, or over the product being
// edited, and resets the form
func (s *AdminService) Submit(ctx context.Context) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AdminService.Submit")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.draft.Price.Valid {
		return nil, domain.ErrDraftIncomplete
	}

	var product domain.Product
	if s.draft.EditingID != "" {
		product = s.draft.Product(s.draft.EditingID)
		if err := s.catalog.Update(ctx, product); err != nil {
			span.RecordError(err)
			return nil, err
		}
	} else {
		product = s.draft.Product(uuid.New().String())
		if err := s.catalog.Create(ctx, product); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}

	span.SetAttributes(attribute.String("product.id", product.ID))

	s.invalidate()
	s.draft = domain.NewDraft()

	span.SetStatus(codes.Ok, "Draft saved")
	return dto.ToProductResponse(product), nil
}

// invalidate must be called with mu held
func (s *AdminService) invalidate() {
	s.token++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.inFlight = false
}

// view must be called with mu held
func (s *AdminService) view() *dto.DraftResponse {
	return &dto.DraftResponse{
		EditingID:   s.draft.EditingID,
		Name:        s.draft.Name,
		Price:       s.draft.Price,
		Quantity:    s.draft.Quantity,
		Category:    string(s.draft.Category),
		Description: s.draft.Description,
		Image:       s.draft.Image,
		Generating:  s.inFlight,
	}
}
