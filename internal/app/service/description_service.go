package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Texts returned in place of a generated description
const (
	FallbackUnavailable = "AI description unavailable (Missing API Key)."
	FallbackEmpty       = "Could not generate description."
	FallbackError       = "Error generating description."
)

// DescriptionService wraps the external generator. Generate never fails;
// every problem maps to a fixed fallback text.
type DescriptionService struct {
	generator   domain.DescriptionGenerator
	tracer      trace.Tracer
	logger      *slog.Logger
	generations metric.Int64Counter
}

// NewDescriptionService creates the service. A nil generator means no API
// key was configured.
func NewDescriptionService(
	generator domain.DescriptionGenerator,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *DescriptionService {
	generations, _ := meter.Int64Counter(
		"descriptions.generated",
		metric.WithDescription("Total number of description generation attempts"),
	)

	return &DescriptionService{
		generator:   generator,
		tracer:      tracer,
		logger:      logger,
		generations: generations,
	}
}

// Generate returns a description for the product, or a fallback text
func (s *DescriptionService) Generate(ctx context.Context, name string, category domain.Category, price decimal.Decimal) string {
	ctx, span := s.tracer.Start(ctx, "DescriptionService.Generate")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.name", name),
		attribute.String("product.category", string(category)),
	)

	if s.generator == nil {
		s.logger.WarnContext(ctx, "Description generator is not configured")
		s.count(ctx, "unavailable")
		return FallbackUnavailable
	}

	text, err := s.generator.GenerateDescription(ctx, name, category, price)
	if err != nil && errors.Is(err, context.Canceled) {
		s.logger.InfoContext(ctx, "Description generation cancelled")
		s.count(ctx, "cancelled")
		return FallbackError
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Generation failed")
		s.logger.ErrorContext(ctx, "Description generation failed",
			slog.String("error", err.Error()),
		)
		s.count(ctx, "failure")
		return FallbackError
	}

	if text == "" {
		s.count(ctx, "empty")
		return FallbackEmpty
	}

	s.count(ctx, "success")
	span.SetStatus(codes.Ok, "Description generated")
	return text
}

func (s *DescriptionService) count(ctx context.Context, result string) {
	s.generations.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
