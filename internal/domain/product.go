package domain

import "time"

// Review is a customer review attached to a product.
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Product is the catalog domain model.
type Product struct {
	ID             string
	Name           string
	Description    string
	Price          float64
	OriginalPrice  *float64
	Category       string
	Image          string
	Rating         float64
	OnSale         bool
	Specifications map[string]string
	Reviews        []Review
	Stock          int
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
