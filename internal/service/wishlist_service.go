package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/commerce-service/internal/domain"
	"github.com/spec-kit/commerce-service/internal/repository"
	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

// WishlistService implements per-user wishlist operations.
type WishlistService struct {
	wishlists repository.WishlistRepository
	products  *ProductService
}

// NewWishlistService builds the service.
func NewWishlistService(wishlists repository.WishlistRepository, products *ProductService) *WishlistService {
	return &WishlistService{wishlists: wishlists, products: products}
}

// GetWishlist returns the user's wishlist with product details attached.
func (s *WishlistService) GetWishlist(ctx context.Context, userID string) ([]*domain.WishlistItem, error) {
	items, err := s.wishlists.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		product, err := s.products.Get(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		item.Product = product
	}
	return items, nil
}

// AddItem adds a product to the wishlist; adding an already-present product
// is a no-op.
func (s *WishlistService) AddItem(ctx context.Context, userID, productID string) ([]*domain.WishlistItem, error) {
	if _, err := s.products.Get(ctx, productID); err != nil {
		return nil, err
	}

	_, err := s.wishlists.GetByUserAndProduct(ctx, userID, productID)
	if errors.Is(err, pgx.ErrNoRows) {
		item := &domain.WishlistItem{UserID: userID, ProductID: productID}
		if err := s.wishlists.Create(ctx, item); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return s.GetWishlist(ctx, userID)
}

// RemoveItem deletes an item from the user's wishlist.
func (s *WishlistService) RemoveItem(ctx context.Context, userID, itemID string) ([]*domain.WishlistItem, error) {
	item, err := s.wishlists.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("wishlist item", map[string]any{"id": itemID})
		}
		return nil, err
	}
	if item.UserID != userID {
		return nil, apperrors.NewAccessDenied()
	}

	if err := s.wishlists.Delete(ctx, item.ID); err != nil {
		return nil, err
	}
	return s.GetWishlist(ctx, userID)
}

// Clear empties the user's wishlist.
func (s *WishlistService) Clear(ctx context.Context, userID string) error {
	return s.wishlists.DeleteByUser(ctx, userID)
}
