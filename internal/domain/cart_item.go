package domain

import "time"

// CartItem links a user to a product with a quantity.
type CartItem struct {
	ID        string
	UserID    string
	ProductID string
	Quantity  int
	Product   *Product
	CreatedAt time.Time
	UpdatedAt time.Time
}
