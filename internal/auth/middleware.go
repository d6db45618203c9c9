package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/commerce-service/internal/domain"
	"github.com/spec-kit/commerce-service/internal/repository"
	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal is the authenticated identity resolved for a single request. It
// lives in the request's own locals, never in shared process state, so
// concurrent requests cannot observe each other's identity.
type Principal struct {
	User        *domain.User
	Authorities []string
}

// Middleware validates bearer tokens and resolves principals.
type Middleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewMiddleware constructs the authentication middleware.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthenticated("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthenticated("invalid authorization header")
	}

	claims, err := m.tokens.Validate(parts[1], TokenTypeAccess)
	if err != nil {
		return TokenDomainError(err)
	}

	user, err := m.users.GetByEmail(c.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthenticated("unknown subject")
		}
		return apperrors.MapError(err)
	}
	if !user.Enabled {
		return apperrors.NewAccountDisabled()
	}

	c.Locals(principalKey, &Principal{User: user, Authorities: claims.AuthorityList()})
	return c.Next()
}

// PrincipalFromContext retrieves the identity resolved for this request.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// TokenDomainError maps token validation failures onto the error taxonomy.
func TokenDomainError(err error) error {
	switch {
	case errors.Is(err, ErrExpiredToken):
		return apperrors.NewDomainError("EXPIRED_TOKEN", "token expired", http.StatusUnauthorized, nil)
	case errors.Is(err, ErrInvalidSignature):
		return apperrors.NewDomainError("INVALID_SIGNATURE", "invalid token signature", http.StatusUnauthorized, nil)
	case errors.Is(err, ErrWrongTokenType):
		return apperrors.NewDomainError("WRONG_TOKEN_TYPE", "wrong token type", http.StatusUnauthorized, nil)
	case errors.Is(err, ErrMalformedToken):
		return apperrors.NewDomainError("MALFORMED_TOKEN", "malformed token", http.StatusUnauthorized, nil)
	default:
		return apperrors.NewUnauthenticated("invalid token")
	}
}
