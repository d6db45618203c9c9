package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/commerce-service/internal/domain"
)

// Token types embedded in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// HS256 requires at least 256 bits of key material.
const minKeyBytes = 32

// Validation failure kinds returned by Validate.
var (
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrExpiredToken     = errors.New("token expired")
	ErrWrongTokenType   = errors.New("wrong token type")
)

// Claims describes the JWT payload: subject (email), comma-joined
// authorities, token type, issued-at and expiry.
type Claims struct {
	Authorities string `json:"auth"`
	TokenType   string `json:"type"`
	jwt.RegisteredClaims
}

// AuthorityList splits the comma-joined authorities claim. An empty claim
// yields an empty list.
func (c *Claims) AuthorityList() []string {
	authorities := make([]string, 0, 2)
	for _, a := range strings.Split(c.Authorities, ",") {
		if trimmed := strings.TrimSpace(a); trimmed != "" {
			authorities = append(authorities, trimmed)
		}
	}
	return authorities
}

// TokenManager issues and validates signed tokens. The signing key is fixed
// at construction and never re-derived per request.
type TokenManager struct {
	key        []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	timeNow    func() time.Time
}

// NewTokenManager decodes and length-checks the base64-encoded signing
// secret. This is the single startup-time configuration check; token
// operations never re-validate the key.
func NewTokenManager(base64Secret string, accessTTLMillis, refreshTTLMillis int64) (*TokenManager, error) {
	key, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return nil, fmt.Errorf("signing secret is not valid base64: %w", err)
	}
	if len(key) < minKeyBytes {
		return nil, fmt.Errorf("signing secret must decode to at least %d bytes, got %d", minKeyBytes, len(key))
	}
	if accessTTLMillis <= 0 {
		accessTTLMillis = 3600000
	}
	if refreshTTLMillis <= 0 {
		refreshTTLMillis = 604800000
	}
	return &TokenManager{
		key:        key,
		accessTTL:  time.Duration(accessTTLMillis) * time.Millisecond,
		refreshTTL: time.Duration(refreshTTLMillis) * time.Millisecond,
		timeNow:    time.Now,
	}, nil
}

// IssueAccess builds and signs a short-lived access token for the user.
func (tm *TokenManager) IssueAccess(user *domain.User) (string, time.Time, error) {
	return tm.issue(user.Email, user.Role.Authority(), TokenTypeAccess, tm.accessTTL)
}

// IssueRefresh builds and signs a refresh token for the user.
func (tm *TokenManager) IssueRefresh(user *domain.User) (string, time.Time, error) {
	return tm.issue(user.Email, user.Role.Authority(), TokenTypeRefresh, tm.refreshTTL)
}

func (tm *TokenManager) issue(subject, authorities, tokenType string, ttl time.Duration) (string, time.Time, error) {
	now := tm.timeNow()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		Authorities: authorities,
		TokenType:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Validate verifies signature and expiry, then enforces the declared token
// type. A token is valid strictly before its expiry instant and invalid at
// or after it. The signing algorithm is pinned server-side; the header's
// declared algorithm is never trusted.
func (tm *TokenManager) Validate(tokenStr, expectedType string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.key, nil
	}, jwt.WithTimeFunc(tm.timeNow))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformedToken
		default:
			return nil, ErrMalformedToken
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformedToken
	}
	if claims.TokenType != expectedType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
