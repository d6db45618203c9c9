package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/commerce-service/internal/domain"
	"github.com/spec-kit/commerce-service/internal/events"
	"github.com/spec-kit/commerce-service/internal/repository"
	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

type fakeProductRepo struct {
	mu   sync.RWMutex
	byID map[string]*domain.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: make(map[string]*domain.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	r.byID[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[product.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.byID[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Deactivate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	product.Active = false
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if product, ok := r.byID[id]; ok {
		return product, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*domain.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var items []*domain.Product
	for _, product := range r.byID {
		if !product.Active {
			continue
		}
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		items = append(items, product)
	}
	return items, int64(len(items)), nil
}

func (r *fakeProductRepo) Related(_ context.Context, category, excludeID string, limit int) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var items []*domain.Product
	for _, product := range r.byID {
		if !product.Active || product.Category != category || product.ID == excludeID {
			continue
		}
		if len(items) == limit {
			break
		}
		items = append(items, product)
	}
	return items, nil
}

func (r *fakeProductRepo) Categories(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := map[string]bool{}
	var categories []string
	for _, product := range r.byID {
		if product.Active && !seen[product.Category] {
			seen[product.Category] = true
			categories = append(categories, product.Category)
		}
	}
	return categories, nil
}

func (r *fakeProductRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byID)), nil
}

type fakeProductCache struct {
	mu      sync.Mutex
	entries map[string]*domain.Product
	hits    int
	sets    int
}

func newFakeProductCache() *fakeProductCache {
	return &fakeProductCache{entries: make(map[string]*domain.Product)}
}

func (c *fakeProductCache) Get(_ context.Context, id string) (*domain.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	product, ok := c.entries[id]
	if ok {
		c.hits++
	}
	return product, ok
}

func (c *fakeProductCache) Set(_ context.Context, product *domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.entries[product.ID] = product
}

func (c *fakeProductCache) Invalidate(_ context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	var types []events.EventType
	for _, event := range d.events {
		types = append(types, event.Type)
	}
	return types
}

func seedProduct(t *testing.T, repo *fakeProductRepo, name, category string, price float64) *domain.Product {
	t.Helper()

	product := &domain.Product{Name: name, Category: category, Price: price, Active: true}
	require.NoError(t, repo.Create(context.Background(), product))
	return product
}

func TestProductGetUsesCacheOnSecondLoad(t *testing.T) {
	repo := newFakeProductRepo()
	cache := newFakeProductCache()
	svc := NewProductService(repo, cache, nil)
	seeded := seedProduct(t, repo, "Laptop", "electronics", 1299)

	first, err := svc.Get(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", first.Name)
	assert.Equal(t, 0, cache.hits)
	assert.Equal(t, 1, cache.sets)

	second, err := svc.Get(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, cache.hits)
}

func TestProductGetNotFound(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), nil, nil)

	_, err := svc.Get(context.Background(), "missing")
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestProductListRejectsBadPaging(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), nil, nil)

	_, err := svc.List(context.Background(), repository.ProductFilter{Page: -1, Size: 10})
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))

	_, err = svc.List(context.Background(), repository.ProductFilter{Page: 0, Size: 0})
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestProductCreateValidatesAndPublishes(t *testing.T) {
	repo := newFakeProductRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewProductService(repo, nil, dispatcher)

	_, err := svc.Create(context.Background(), &domain.Product{Name: "", Price: 10}, "admin@example.com")
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))

	created, err := svc.Create(context.Background(), &domain.Product{Name: "Desk", Price: 250, Category: "furniture"}, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, created.Active)
	assert.Contains(t, dispatcher.types(), events.EventProductCreated)
}

func TestProductDeleteDeactivatesAndPublishes(t *testing.T) {
	repo := newFakeProductRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewProductService(repo, nil, dispatcher)
	product := seedProduct(t, repo, "Chair", "furniture", 90)

	require.NoError(t, svc.Delete(context.Background(), product.ID, "admin@example.com"))
	assert.False(t, product.Active)
	assert.Contains(t, dispatcher.types(), events.EventProductDeleted)

	err := svc.Delete(context.Background(), "missing", "admin@example.com")
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestProductUpdatePreservesCreationTime(t *testing.T) {
	repo := newFakeProductRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewProductService(repo, nil, dispatcher)
	existing := seedProduct(t, repo, "Monitor", "electronics", 400)

	updated, err := svc.Update(context.Background(), existing.ID, &domain.Product{Name: "Monitor 27", Price: 450, Category: "electronics", Active: true}, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, updated.ID)
	assert.Equal(t, existing.CreatedAt, updated.CreatedAt)
	assert.Contains(t, dispatcher.types(), events.EventProductUpdated)
}

func TestProductRelatedExcludesSelf(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo, nil, nil)
	anchor := seedProduct(t, repo, "Keyboard", "electronics", 60)
	seedProduct(t, repo, "Mouse", "electronics", 30)
	seedProduct(t, repo, "Sofa", "furniture", 800)

	related, err := svc.Related(context.Background(), anchor.ID)
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, "Mouse", related[0].Name)
}

func TestDomainErrorShapeForNotFound(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), nil, nil)

	_, err := svc.Get(context.Background(), "missing")
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 404, domainErr.HTTPStatus)
	assert.Equal(t, "missing", domainErr.Details["id"])
}
