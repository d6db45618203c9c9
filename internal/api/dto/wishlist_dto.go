package dto

import (
	"time"

	"github.com/spec-kit/commerce-service/internal/domain"
)

// WishlistAddRequest payload for adding a product to the wishlist.
type WishlistAddRequest struct {
	ProductID string `json:"product_id"`
}

// WishlistItemResponse is the client view of a wishlist item.
type WishlistItemResponse struct {
	ID        string           `json:"id"`
	ProductID string           `json:"product_id"`
	Product   *ProductResponse `json:"product,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewWishlistItemResponses projects wishlist items.
func NewWishlistItemResponses(items []*domain.WishlistItem) []WishlistItemResponse {
	responses := make([]WishlistItemResponse, 0, len(items))
	for _, item := range items {
		resp := WishlistItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
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
