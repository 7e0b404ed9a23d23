package dto

import (
	"github.com/shopspring/decimal"
)

// DescriptionRequest asks for generated copy for an unsaved product
type DescriptionRequest struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

type DescriptionResponse struct {
	Description string `json:"description"`
}

// DraftRequest replaces the editable fields of the admin draft
type DraftRequest struct {
	Name        string              `json:"name"`
	Price       decimal.NullDecimal `json:"price"`
	Quantity    int                 `json:"quantity"`
	Category    string              `json:"category"`
	Description string              `json:"description"`
	Image       string              `json:"image"`
}

// DraftResponse is the admin form state
type DraftResponse struct {
	EditingID   string              `json:"editingId,omitempty"`
	Name        string              `json:"name"`
	Price       decimal.NullDecimal `json:"price"`
	Quantity    int                 `json:"quantity"`
	Category    string              `json:"category"`
	Description string              `json:"description"`
	Image       string              `json:"image"`
	Generating  bool                `json:"generating"`
}
