package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrInvalidProductName, http.StatusBadRequest},
		{domain.ErrDraftIncomplete, http.StatusBadRequest},
		{fmt.Errorf("lookup: %w", domain.ErrProductNotFound), http.StatusNotFound},
		{domain.ErrProductConflict, http.StatusConflict},
		{domain.ErrStaleGeneration, http.StatusConflict},
		{domain.ErrCheckoutUnavailable, http.StatusNotImplemented},
		{context.Canceled, StatusClientClosedRequest},
		{context.DeadlineExceeded, http.StatusRequestTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestDomainErrorCancelled(t *testing.T) {
	rec := httptest.NewRecorder()
	DomainError(rec, context.Canceled)

	assert.Equal(t, StatusClientClosedRequest, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "client_closed_request", body.Error)
}
