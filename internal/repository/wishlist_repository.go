package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/commerce-service/internal/domain"
)

// WishlistRepository defines persistence access for wishlist items.
type WishlistRepository interface {
	Create(ctx context.Context, item *domain.WishlistItem) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
	GetByID(ctx context.Context, id string) (*domain.WishlistItem, error)
	GetByUser(ctx context.Context, userID string) ([]*domain.WishlistItem, error)
	GetByUserAndProduct(ctx context.Context, userID, productID string) (*domain.WishlistItem, error)
}

type wishlistRepository struct {
	pool *pgxpool.Pool
}

// NewWishlistRepository returns a Postgres-backed implementation.
func NewWishlistRepository(pool *pgxpool.Pool) WishlistRepository {
	return &wishlistRepository{pool: pool}
}

func (r *wishlistRepository) Create(ctx context.Context, item *domain.WishlistItem) error {
	const query = `
        INSERT INTO wishlist_items (id, user_id, product_id)
        VALUES ($1, $2, $3)
        RETURNING created_at, updated_at`

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	return r.pool.QueryRow(ctx, query,
		item.ID,
		item.UserID,
		item.ProductID,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
}

func (r *wishlistRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM wishlist_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *wishlistRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM wishlist_items WHERE user_id=$1`, userID)
	return err
}

func (r *wishlistRepository) GetByID(ctx context.Context, id string) (*domain.WishlistItem, error) {
	const query = `
        SELECT id, user_id, product_id, created_at, updated_at
        FROM wishlist_items WHERE id=$1`

	return scanWishlistItem(r.pool.QueryRow(ctx, query, id))
}

func (r *wishlistRepository) GetByUser(ctx context.Context, userID string) ([]*domain.WishlistItem, error) {
	const query = `
        SELECT id, user_id, product_id, created_at, updated_at
        FROM wishlist_items WHERE user_id=$1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.WishlistItem, 0)
	for rows.Next() {
		item, err := scanWishlistItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *wishlistRepository) GetByUserAndProduct(ctx context.Context, userID, productID string) (*domain.WishlistItem, error) {
	const query = `
        SELECT id, user_id, product_id, created_at, updated_at
        FROM wishlist_items WHERE user_id=$1 AND product_id=$2`

	return scanWishlistItem(r.pool.QueryRow(ctx, query, userID, productID))
}

func scanWishlistItem(row pgx.Row) (*domain.WishlistItem, error) {
	var item domain.WishlistItem
	if err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}
