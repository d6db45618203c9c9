package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/commerce-service/internal/auth"
	"github.com/spec-kit/commerce-service/internal/config"
	"github.com/spec-kit/commerce-service/internal/domain"
	"github.com/spec-kit/commerce-service/internal/events"
	"github.com/spec-kit/commerce-service/internal/repository"
	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

// TokenPair bundles the access/refresh tokens issued on login and register.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// AuthService coordinates credential verification and token flows.
type AuthService struct {
	users      repository.UserRepository
	hasher     *auth.PasswordHasher
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Tokens     *auth.TokenManager
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		hasher:     auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		tokens:     deps.Tokens,
		dispatcher: deps.Dispatcher,
	}
}

// Login verifies credentials and issues a token pair. A missing account and
// a wrong password produce the same failure; a disabled account is reported
// distinctly, but only after the password checks out.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewInvalidCredentials()
		}
		return nil, nil, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, nil, apperrors.NewInvalidCredentials()
	}
	if !user.Enabled {
		return nil, nil, apperrors.NewAccountDisabled()
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Register creates a new USER account and issues a token pair.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, *TokenPair, error) {
	if err := validateRegistration(name, email, password); err != nil {
		return nil, nil, err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, nil, apperrors.NewEmailTaken()
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Enabled:      true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserRegistered,
			SubjectID: user.ID,
			Actor:     user.Email,
			Timestamp: time.Now(),
			Payload:   events.UserRegisteredPayload{Email: user.Email, Name: user.Name},
		})
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh validates a refresh token and issues a new access token. The
// refresh token itself is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := s.tokens.Validate(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return "", time.Time{}, auth.TokenDomainError(err)
	}

	user, err := s.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, apperrors.NewUnauthenticated("unknown subject")
		}
		return "", time.Time{}, err
	}
	if !user.Enabled {
		return "", time.Time{}, apperrors.NewAccountDisabled()
	}

	return s.tokens.IssueAccess(user)
}

// Logout is a no-op for stateless tokens; clients discard their copies.
func (s *AuthService) Logout(_ context.Context) error {
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) issuePair(user *domain.User) (*TokenPair, error) {
	access, accessExp, err := s.tokens.IssueAccess(user)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.tokens.IssueRefresh(user)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func validateRegistration(name, email, password string) error {
	fields := map[string]any{}
	if len(name) < 3 || len(name) > 50 {
		fields["name"] = "must be between 3 and 50 characters"
	}
	if email == "" || !strings.Contains(email, "@") {
		fields["email"] = "must be a valid email address"
	}
	if len(password) < 6 {
		fields["password"] = "must be at least 6 characters"
	}
	if len(fields) > 0 {
		return apperrors.NewValidationError("validation failed", fields)
	}
	return nil
}
