package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

// Authorize grants when the caller holds at least one of the required
// authorities. Stateless; called explicitly before each protected operation.
func Authorize(authorities, required []string) error {
	if len(required) == 0 {
		return nil
	}
	held := make(map[string]struct{}, len(authorities))
	for _, a := range authorities {
		held[a] = struct{}{}
	}
	for _, r := range required {
		if _, ok := held[r]; ok {
			return nil
		}
	}
	return apperrors.NewAccessDenied()
}

// RequireAuthorities gates a route on the request principal's authorities.
func RequireAuthorities(required ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("authentication required")
		}
		if err := Authorize(principal.Authorities, required); err != nil {
			return err
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures a principal was resolved for the request.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthenticated("authentication required")
		}
		return c.Next()
	}
}
