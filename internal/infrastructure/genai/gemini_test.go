package genai

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

type generateRequest struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
}

func newTestClient(t *testing.T, baseURL string) *GeminiClient {
	t.Helper()
	client, err := NewGeminiClient(context.Background(), Options{
		APIKey:  "secret",
		BaseURL: baseURL,
		Timeout: time.Second,
	}, noop.NewTracerProvider().Tracer("test"), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return client
}

func TestGenerateDescription(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "models/gemini-2.5-flash:generateContent")
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"  Quiet light. "},{"text":"Warm glow."}]}}]}`))
	}))
	defer srv.Close()

	text, err := newTestClient(t, srv.URL).GenerateDescription(context.Background(), "Lamp", domain.CategoryHome, decimal.RequireFromString("89.99"))
	require.NoError(t, err)
	assert.Equal(t, "Quiet light. Warm glow.", text)

	require.Len(t, got.Contents, 1)
	require.Len(t, got.Contents[0].Parts, 1)
	assert.Contains(t, got.Contents[0].Parts[0].Text, `named "Lamp"`)
	assert.Contains(t, got.Contents[0].Parts[0].Text, `category "Home"`)
	assert.Contains(t, got.Contents[0].Parts[0].Text, "$89.99")
}

func TestGenerateDescriptionEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	text, err := newTestClient(t, srv.URL).GenerateDescription(context.Background(), "Lamp", domain.CategoryHome, decimal.Zero)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestGenerateDescriptionErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	text, err := newTestClient(t, srv.URL).GenerateDescription(context.Background(), "Lamp", domain.CategoryHome, decimal.Zero)
	assert.Error(t, err)
	assert.Empty(t, text)
}

func TestGenerateDescriptionHonoursCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(t, srv.URL).GenerateDescription(ctx, "Lamp", domain.CategoryHome, decimal.Zero)
	assert.ErrorIs(t, err, context.Canceled)
}
