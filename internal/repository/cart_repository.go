package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/commerce-service/internal/domain"
)

// CartRepository defines persistence access for cart items.
type CartRepository interface {
	Create(ctx context.Context, item *domain.CartItem) error
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
	GetByID(ctx context.Context, id string) (*domain.CartItem, error)
	GetByUser(ctx context.Context, userID string) ([]*domain.CartItem, error)
	GetByUserAndProduct(ctx context.Context, userID, productID string) (*domain.CartItem, error)
}

type cartRepository struct {
	pool *pgxpool.Pool
}

// NewCartRepository returns a Postgres-backed implementation.
func NewCartRepository(pool *pgxpool.Pool) CartRepository {
	return &cartRepository{pool: pool}
}

func (r *cartRepository) Create(ctx context.Context, item *domain.CartItem) error {
	const query = `
        INSERT INTO cart_items (id, user_id, product_id, quantity)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at`

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	return r.pool.QueryRow(ctx, query,
		item.ID,
		item.UserID,
		item.ProductID,
		item.Quantity,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE cart_items SET quantity=$1, updated_at=NOW() WHERE id=$2`, quantity, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *cartRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *cartRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1`, userID)
	return err
}

func (r *cartRepository) GetByID(ctx context.Context, id string) (*domain.CartItem, error) {
	const query = `
        SELECT id, user_id, product_id, quantity, created_at, updated_at
        FROM cart_items WHERE id=$1`

	return scanCartItem(r.pool.QueryRow(ctx, query, id))
}

func (r *cartRepository) GetByUser(ctx context.Context, userID string) ([]*domain.CartItem, error) {
	const query = `
        SELECT id, user_id, product_id, quantity, created_at, updated_at
        FROM cart_items WHERE user_id=$1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.CartItem, 0)
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *cartRepository) GetByUserAndProduct(ctx context.Context, userID, productID string) (*domain.CartItem, error) {
	const query = `
        SELECT id, user_id, product_id, quantity, created_at, updated_at
        FROM cart_items WHERE user_id=$1 AND product_id=$2`

	return scanCartItem(r.pool.QueryRow(ctx, query, userID, productID))
}

func scanCartItem(row pgx.Row) (*domain.CartItem, error) {
	var item domain.CartItem
	if err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}
