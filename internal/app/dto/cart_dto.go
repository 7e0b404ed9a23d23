package dto

import (
	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/shopspring/decimal"
)

// AddToCartRequest adds a catalog product to the cart. Quantity defaults to 1.
type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity,omitempty"`
}

// UpdateCartQuantityRequest sets a line's quantity
type UpdateCartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CartItemResponse struct {
	ProductResponse
	CartQuantity int             `json:"cartQuantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// CartResponse is the cart review view: lines plus derived count and total
type CartResponse struct {
	Items []*CartItemResponse `json:"items"`
	Count int                 `json:"count"`
	Total decimal.Decimal     `json:"total"`
}

// ToCartResponse derives count and total from the given lines
func ToCartResponse(items []domain.CartItem) *CartResponse {
	resp := &CartResponse{
		Items: make([]*CartItemResponse, len(items)),
		Count: domain.CartCount(items),
		Total: domain.CartTotal(items),
	}
	for i, item := range items {
		resp.Items[i] = &CartItemResponse{
			ProductResponse: *ToProductResponse(item.Product),
			CartQuantity:    item.CartQuantity,
			Subtotal:        item.Subtotal(),
		}
	}
	return resp
}
