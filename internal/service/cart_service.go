package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/commerce-service/internal/domain"
	"github.com/spec-kit/commerce-service/internal/repository"
	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

// CartService implements per-user cart operations. Every mutation checks the
// item belongs to the calling user.
type CartService struct {
	carts    repository.CartRepository
	products *ProductService
}

// NewCartService builds the service.
func NewCartService(carts repository.CartRepository, products *ProductService) *CartService {
	return &CartService{carts: carts, products: products}
}

// GetCart returns the user's cart with product details attached.
func (s *CartService) GetCart(ctx context.Context, userID string) ([]*domain.CartItem, error) {
	items, err := s.carts.GetByUser(ctx, userID)
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

// AddItem adds the product to the cart, merging quantity when it is already
// present.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) ([]*domain.CartItem, error) {
	if quantity <= 0 {
		return nil, apperrors.NewValidationError("quantity must be positive", nil)
	}
	if _, err := s.products.Get(ctx, productID); err != nil {
		return nil, err
	}

	existing, err := s.carts.GetByUserAndProduct(ctx, userID, productID)
	switch {
	case err == nil:
		if err := s.carts.UpdateQuantity(ctx, existing.ID, existing.Quantity+quantity); err != nil {
			return nil, err
		}
	case errors.Is(err, pgx.ErrNoRows):
		item := &domain.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
		if err := s.carts.Create(ctx, item); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

// UpdateItem sets an item's quantity; zero or negative removes it.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID string, quantity int) ([]*domain.CartItem, error) {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		if err := s.carts.Delete(ctx, item.ID); err != nil {
			return nil, err
		}
	} else if err := s.carts.UpdateQuantity(ctx, item.ID, quantity); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

// RemoveItem deletes an item from the user's cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) ([]*domain.CartItem, error) {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.carts.Delete(ctx, item.ID); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

// Clear empties the user's cart.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.carts.DeleteByUser(ctx, userID)
}

func (s *CartService) ownedItem(ctx context.Context, userID, itemID string) (*domain.CartItem, error) {
	item, err := s.carts.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("cart item", map[string]any{"id": itemID})
		}
		return nil, err
	}
	if item.UserID != userID {
		return nil, apperrors.NewAccessDenied()
	}
	return item, nil
}
