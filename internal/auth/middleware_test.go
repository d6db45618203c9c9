package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/commerce-service/internal/domain"
	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

type fakeUserRepo struct {
	mu      sync.RWMutex
	byEmail map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{byEmail: make(map[string]*domain.User)}
	for _, user := range users {
		repo.byEmail[user.Email] = user
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if user, ok := r.byEmail[email]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byEmail)), nil
}

func newTestApp(t *testing.T, tm *TokenManager, repo *fakeUserRepo) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"code": domainErr.Code})
		},
	})

	m := NewMiddleware(tm, repo)
	app.Get("/me", m.Handle, func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{"email": principal.User.Email})
	})
	app.Post("/admin", m.Handle, RequireAuthorities("ROLE_ADMIN"), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string) (int, map[string]string) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := map[string]string{}
	_ = json.Unmarshal(payload, &body)
	return resp.StatusCode, body
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	tm := newTestManager(t, 3600000, 604800000)
	app := newTestApp(t, tm, newFakeUserRepo())

	status, body := doRequest(t, app, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHENTICATED", body["code"])
}

func TestMiddlewareRejectsGarbageToken(t *testing.T) {
	tm := newTestManager(t, 3600000, 604800000)
	app := newTestApp(t, tm, newFakeUserRepo())

	status, body := doRequest(t, app, http.MethodGet, "/me", "not.a.token")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MALFORMED_TOKEN", body["code"])
}

func TestMiddlewareRejectsRefreshTokenOnProtectedRoute(t *testing.T) {
	user := testUser(domain.RoleUser)
	tm := newTestManager(t, 3600000, 604800000)
	app := newTestApp(t, tm, newFakeUserRepo(user))

	refresh, _, err := tm.IssueRefresh(user)
	require.NoError(t, err)

	status, body := doRequest(t, app, http.MethodGet, "/me", refresh)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "WRONG_TOKEN_TYPE", body["code"])
}

func TestMiddlewareResolvesPrincipal(t *testing.T) {
	user := testUser(domain.RoleUser)
	tm := newTestManager(t, 3600000, 604800000)
	app := newTestApp(t, tm, newFakeUserRepo(user))

	token, _, err := tm.IssueAccess(user)
	require.NoError(t, err)

	status, body := doRequest(t, app, http.MethodGet, "/me", token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, user.Email, body["email"])
}

func TestMiddlewareRejectsDisabledAccount(t *testing.T) {
	user := testUser(domain.RoleUser)
	user.Enabled = false
	tm := newTestManager(t, 3600000, 604800000)
	app := newTestApp(t, tm, newFakeUserRepo(user))

	token, _, err := tm.IssueAccess(user)
	require.NoError(t, err)

	status, body := doRequest(t, app, http.MethodGet, "/me", token)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "ACCOUNT_DISABLED", body["code"])
}

func TestRoleGateOnRoutes(t *testing.T) {
	admin := testUser(domain.RoleAdmin)
	regular := &domain.User{ID: "user-2", Name: "Regular User", Email: "user@example.com", Role: domain.RoleUser, Enabled: true}
	tm := newTestManager(t, 3600000, 604800000)
	app := newTestApp(t, tm, newFakeUserRepo(admin, regular))

	adminToken, _, err := tm.IssueAccess(admin)
	require.NoError(t, err)
	userToken, _, err := tm.IssueAccess(regular)
	require.NoError(t, err)

	status, _ := doRequest(t, app, http.MethodPost, "/admin", adminToken)
	assert.Equal(t, http.StatusOK, status)

	status, body := doRequest(t, app, http.MethodPost, "/admin", userToken)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "ACCESS_DENIED", body["code"])
}

func TestPrincipalIsolationAcrossConcurrentRequests(t *testing.T) {
	tm := newTestManager(t, 3600000, 604800000)

	const n = 16
	users := make([]*domain.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, &domain.User{
			ID:      fmt.Sprintf("user-%d", i),
			Name:    fmt.Sprintf("User %d", i),
			Email:   fmt.Sprintf("user%d@example.com", i),
			Role:    domain.RoleUser,
			Enabled: true,
		})
	}
	app := newTestApp(t, tm, newFakeUserRepo(users...))

	var wg sync.WaitGroup
	for _, user := range users {
		token, _, err := tm.IssueAccess(user)
		require.NoError(t, err)

		wg.Add(1)
		go func(email, token string) {
			defer wg.Done()
			status, body := doRequest(t, app, http.MethodGet, "/me", token)
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, email, body["email"])
		}(user.Email, token)
	}
	wg.Wait()
}
