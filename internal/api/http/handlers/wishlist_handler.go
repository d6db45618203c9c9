package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commerce-service/internal/api/dto"
	"github.com/spec-kit/commerce-service/internal/auth"
	"github.com/spec-kit/commerce-service/internal/service"
	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

// WishlistHandler exposes wishlist endpoints; all routes require authentication.
type WishlistHandler struct {
	wishlist *service.WishlistService
}

// NewWishlistHandler constructs handler.
func NewWishlistHandler(wishlist *service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist}
}

// Get handles GET /wishlist.
func (h *WishlistHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("not authenticated")
	}

	items, err := h.wishlist.GetWishlist(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWishlistItemResponses(items)})
}

// Add handles POST /wishlist/items.
func (h *WishlistHandler) Add(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("not authenticated")
	}

	var req dto.WishlistAddRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ProductID == "" {
		return apperrors.NewValidationError("product_id required", nil)
	}

	items, err := h.wishlist.AddItem(c.Context(), principal.User.ID, req.ProductID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewWishlistItemResponses(items)})
}

// Remove handles DELETE /wishlist/items/:id.
func (h *WishlistHandler) Remove(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("not authenticated")
	}

	items, err := h.wishlist.RemoveItem(c.Context(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWishlistItemResponses(items)})
}

// Clear handles DELETE /wishlist.
func (h *WishlistHandler) Clear(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("not authenticated")
	}

	if err := h.wishlist.Clear(c.Context(), principal.User.ID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
