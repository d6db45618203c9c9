package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/commerce-service/internal/domain"
)

type fakeWishlistRepo struct {
	mu   sync.RWMutex
	byID map[string]*domain.WishlistItem
}

func newFakeWishlistRepo() *fakeWishlistRepo {
	return &fakeWishlistRepo{byID: make(map[string]*domain.WishlistItem)}
}

func (r *fakeWishlistRepo) Create(_ context.Context, item *domain.WishlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	r.byID[item.ID] = item
	return nil
}

func (r *fakeWishlistRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeWishlistRepo) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, item := range r.byID {
		if item.UserID == userID {
			delete(r.byID, id)
		}
	}
	return nil
}

func (r *fakeWishlistRepo) GetByID(_ context.Context, id string) (*domain.WishlistItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if item, ok := r.byID[id]; ok {
		return item, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeWishlistRepo) GetByUser(_ context.Context, userID string) ([]*domain.WishlistItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var items []*domain.WishlistItem
	for _, item := range r.byID {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *fakeWishlistRepo) GetByUserAndProduct(_ context.Context, userID, productID string) (*domain.WishlistItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.byID {
		if item.UserID == userID && item.ProductID == productID {
			return item, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func newWishlistFixture() (*fakeProductRepo, *WishlistService) {
	catalog := newFakeProductRepo()
	return catalog, NewWishlistService(newFakeWishlistRepo(), NewProductService(catalog, nil, nil))
}

func TestWishlistAddIsIdempotent(t *testing.T) {
	catalog, svc := newWishlistFixture()
	product := seedProduct(t, catalog, "Laptop", "electronics", 1299)

	items, err := svc.AddItem(context.Background(), "user-1", product.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, err = svc.AddItem(context.Background(), "user-1", product.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Laptop", items[0].Product.Name)
}

func TestWishlistAddUnknownProduct(t *testing.T) {
	_, svc := newWishlistFixture()

	_, err := svc.AddItem(context.Background(), "user-1", "missing")
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestWishlistRemoveRejectsForeignItems(t *testing.T) {
	catalog, svc := newWishlistFixture()
	product := seedProduct(t, catalog, "Laptop", "electronics", 1299)

	items, err := svc.AddItem(context.Background(), "user-1", product.ID)
	require.NoError(t, err)

	_, err = svc.RemoveItem(context.Background(), "user-2", items[0].ID)
	assert.Equal(t, "ACCESS_DENIED", domainCode(t, err))

	_, err = svc.RemoveItem(context.Background(), "user-1", "missing")
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))

	items, err = svc.RemoveItem(context.Background(), "user-1", items[0].ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
