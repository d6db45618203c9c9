package domain

import "time"

// WishlistItem marks a product a user wants to keep track of.
type WishlistItem struct {
	ID        string
	UserID    string
	ProductID string
	Product   *Product
	CreatedAt time.Time
	UpdatedAt time.Time
}
