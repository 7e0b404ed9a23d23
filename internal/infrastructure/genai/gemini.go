// Package genai generates product descriptions with the Gemini API.
package genai

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	googlegenai "google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

type Options struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini endpoint; empty uses the SDK default
	BaseURL string
	Timeout time.Duration
}

// GeminiClient implements domain.DescriptionGenerator
type GeminiClient struct {
	model  string
	client *googlegenai.Client
	tracer trace.Tracer
	logger *slog.Logger
}

func NewGeminiClient(ctx context.Context, opts Options, tracer trace.Tracer, logger *slog.Logger) (*GeminiClient, error) {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}

	client, err := googlegenai.NewClient(ctx, &googlegenai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: googlegenai.BackendGeminiAPI,
		HTTPClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   opts.Timeout,
		},
		HTTPOptions: googlegenai.HTTPOptions{BaseURL: opts.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		model:  opts.Model,
		client: client,
		tracer: tracer,
		logger: logger,
	}, nil
}

// Prompt builds the instruction sent to the model
func Prompt(name string, category domain.Category, price decimal.Decimal) string {
	return fmt.Sprintf(
		"Write a compelling, short, and aesthetic product description (max 2 sentences) for a product named %q in the category %q priced at $%s. Adopt a sophisticated, minimalist tone.",
		name, string(category), price.String(),
	)
}

// GenerateDescription returns the model's text, or "" if it produced none
func (c *GeminiClient) GenerateDescription(ctx context.Context, name string, category domain.Category, price decimal.Decimal) (string, error) {
	ctx, span := c.tracer.Start(ctx, "GeminiClient.GenerateDescription")
	defer span.End()

	span.SetAttributes(
		attribute.String("genai.model", c.model),
		attribute.String("product.name", name),
	)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, googlegenai.Text(Prompt(name, category, price)), nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Request failed")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		c.logger.WarnContext(ctx, "Generative API call failed",
			slog.String("model", c.model),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("failed to call generative API: %w", err)
	}

	span.SetStatus(codes.Ok, "Description generated")
	return strings.TrimSpace(resp.Text()), nil
}
