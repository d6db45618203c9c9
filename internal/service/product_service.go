package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/commerce-service/internal/domain"
	"github.com/spec-kit/commerce-service/internal/events"
	"github.com/spec-kit/commerce-service/internal/repository"
	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

const relatedProductsLimit = 8

// ProductCache is the read-through cache consulted for product-by-id loads.
type ProductCache interface {
	Get(ctx context.Context, id string) (*domain.Product, bool)
	Set(ctx context.Context, product *domain.Product)
	Invalidate(ctx context.Context, id string)
}

// ProductPage is one page of a catalog listing.
type ProductPage struct {
	Items []*domain.Product
	Page  int
	Size  int
	Total int64
}

// ProductService implements catalog operations.
type ProductService struct {
	products   repository.ProductRepository
	cache      ProductCache
	dispatcher events.Dispatcher
}

// NewProductService builds the service.
func NewProductService(products repository.ProductRepository, cache ProductCache, dispatcher events.Dispatcher) *ProductService {
	return &ProductService{products: products, cache: cache, dispatcher: dispatcher}
}

// List returns a filtered, sorted page of active products.
func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter) (*ProductPage, error) {
	if filter.Page < 0 || filter.Size <= 0 {
		return nil, apperrors.NewValidationError("page must be non-negative and size positive", nil)
	}

	items, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Items: items, Page: filter.Page, Size: filter.Size, Total: total}, nil
}

// Get loads a product by id, consulting the cache first.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	if s.cache != nil {
		if product, ok := s.cache.Get(ctx, id); ok {
			return product, nil
		}
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"id": id})
		}
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, product)
	}
	return product, nil
}

// Related returns other active products in the same category.
func (s *ProductService) Related(ctx context.Context, id string) ([]*domain.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.products.Related(ctx, product.Category, product.ID, relatedProductsLimit)
}

// Categories returns the distinct categories of active products.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.products.Categories(ctx)
}

// Create adds a new product to the catalog.
func (s *ProductService) Create(ctx context.Context, product *domain.Product, actor string) (*domain.Product, error) {
	if product.Name == "" || product.Price <= 0 {
		return nil, apperrors.NewValidationError("name and positive price required", nil)
	}

	product.Active = true
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventProductCreated, product, actor)
	return product, nil
}

// Update replaces an existing product, preserving its creation time.
func (s *ProductService) Update(ctx context.Context, id string, product *domain.Product, actor string) (*domain.Product, error) {
	existing, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"id": id})
		}
		return nil, err
	}

	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventProductUpdated, product, actor)
	return product, nil
}

// Delete soft-deletes a product by deactivating it.
func (s *ProductService) Delete(ctx context.Context, id string, actor string) error {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("product", map[string]any{"id": id})
		}
		return err
	}

	if err := s.products.Deactivate(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.EventProductDeleted, product, actor)
	return nil
}

func (s *ProductService) publish(ctx context.Context, eventType events.EventType, product *domain.Product, actor string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: product.ID,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   events.ProductChangedPayload{Name: product.Name, Category: product.Category},
	})
}
