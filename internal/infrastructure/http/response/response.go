package response

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mrops-br/storefront-api/internal/domain"
)

// StatusClientClosedRequest is the non-standard status for requests the
// client abandoned before a response was ready
const StatusClientClosedRequest = 499

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends an error response
func Error(w http.ResponseWriter, status int, err error) {
	errorType := "error"
	switch status {
	case http.StatusNotFound:
		errorType = "not_found"
	case http.StatusBadRequest:
		errorType = "bad_request"
	case http.StatusConflict:
		errorType = "conflict"
	case http.StatusNotImplemented:
		errorType = "not_implemented"
	case http.StatusRequestTimeout:
		errorType = "request_timeout"
	case StatusClientClosedRequest:
		errorType = "client_closed_request"
	case http.StatusInternalServerError:
		errorType = "internal_server_error"
	}

	JSON(w, status, ErrorResponse{
		Error:   errorType,
		Message: err.Error(),
	})
}

// StatusFor maps domain errors to HTTP status codes
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidProductName),
		errors.Is(err, domain.ErrInvalidProductPrice),
		errors.Is(err, domain.ErrInvalidProductQuantity),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrDraftIncomplete):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrProductConflict),
		errors.Is(err, domain.ErrGenerationInFlight),
		errors.Is(err, domain.ErrStaleGeneration):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCheckoutUnavailable):
		return http.StatusNotImplemented
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// DomainError sends err with the status StatusFor picks
func DomainError(w http.ResponseWriter, err error) {
	Error(w, StatusFor(err), err)
}
