package dto

import (
	"time"

	"github.com/spec-kit/commerce-service/internal/domain"
)

// CartAddRequest payload for adding a product to the cart.
type CartAddRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CartUpdateRequest payload for changing an item's quantity.
type CartUpdateRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse is the client view of a cart item.
type CartItemResponse struct {
	ID        string           `json:"id"`
	ProductID string           `json:"product_id"`
	Quantity  int              `json:"quantity"`
	Product   *ProductResponse `json:"product,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewCartItemResponses projects cart items.
func NewCartItemResponses(items []*domain.CartItem) []CartItemResponse {
	responses := make([]CartItemResponse, 0, len(items))
	for _, item := range items {
		resp := CartItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			CreatedAt: item.CreatedAt,
		}
		if item.Product != nil {
			product := NewProductResponse(item.Product)
			resp.Product = &product
		}
		responses = append(responses, resp)
	}
	return responses
}
