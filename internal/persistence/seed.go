package persistence

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/commerce-service/internal/auth"
	"github.com/spec-kit/commerce-service/internal/domain"
	"github.com/spec-kit/commerce-service/internal/repository"
)

// Seeder populates empty tables with a starter admin/user pair and a small
// sample catalog.
type Seeder struct {
	users    repository.UserRepository
	products repository.ProductRepository
	hasher   *auth.PasswordHasher
	logger   *zap.Logger
}

// NewSeeder builds a seeder.
func NewSeeder(users repository.UserRepository, products repository.ProductRepository, hasher *auth.PasswordHasher, logger *zap.Logger) *Seeder {
	return &Seeder{users: users, products: products, hasher: hasher, logger: logger}
}

// Run seeds users and products when the respective tables are empty.
func (s *Seeder) Run(ctx context.Context) error {
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if userCount == 0 {
		if err := s.seedUsers(ctx); err != nil {
			return err
		}
	}

	productCount, err := s.products.Count(ctx)
	if err != nil {
		return err
	}
	if productCount == 0 {
		if err := s.seedProducts(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	accounts := []struct {
		name     string
		email    string
		password string
		role     domain.Role
	}{
		{"Admin User", "admin@example.com", "admin123", domain.RoleAdmin},
		{"Regular User", "user@example.com", "user123", domain.RoleUser},
	}

	for _, account := range accounts {
		hash, err := s.hasher.Hash(account.password)
		if err != nil {
			return err
		}
		user := &domain.User{
			Name:         account.name,
			Email:        account.email,
			PasswordHash: hash,
			Role:         account.role,
			Enabled:      true,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return err
		}
	}

	s.logger.Info("seeded users", zap.Int("count", len(accounts)))
	return nil
}

func (s *Seeder) seedProducts(ctx context.Context) error {
	price := func(v float64) *float64 { return &v }

	products := []*domain.Product{
		{
			Name:        "Modern Desk Lamp",
			Description: "A sleek and modern desk lamp with adjustable brightness",
			Price:       49.99,
			Category:    "Lighting",
			Image:       "https://example.com/images/desk-lamp.jpg",
			Rating:      4.5,
			Specifications: map[string]string{
				"Color":    "Black",
				"Material": "Aluminum",
				"Height":   "16 inches",
				"Power":    "LED 9W",
			},
			Stock:  50,
			Active: true,
		},
		{
			Name:          "Ergonomic Office Chair",
			Description:   "High-quality ergonomic office chair with lumbar support",
			Price:         299.99,
			OriginalPrice: price(399.99),
			Category:      "Furniture",
			Image:         "https://example.com/images/office-chair.jpg",
			Rating:        4.8,
			OnSale:        true,
			Specifications: map[string]string{
				"Color":             "Gray",
				"Material":          "Mesh and Metal",
				"Weight Capacity":   "300 lbs",
				"Adjustable Height": "Yes",
			},
			Stock:  25,
			Active: true,
		},
		{
			Name:        "Wireless Keyboard",
			Description: "Compact wireless keyboard with long battery life",
			Price:       79.99,
			Category:    "Electronics",
			Image:       "https://example.com/images/keyboard.jpg",
			Rating:      4.3,
			Specifications: map[string]string{
				"Color":        "White",
				"Connectivity": "Bluetooth 5.0",
				"Battery Life": "6 months",
				"Compatible":   "Windows/Mac",
			},
			Stock:  100,
			Active: true,
		},
		{
			Name:          "Smart Monitor",
			Description:   "27-inch 4K monitor with built-in smart features",
			Price:         449.99,
			OriginalPrice: price(499.99),
			Category:      "Electronics",
			Image:         "https://example.com/images/monitor.jpg",
			Rating:        4.6,
			OnSale:        true,
			Specifications: map[string]string{
				"Size":         "27 inches",
				"Resolution":   "3840x2160",
				"Refresh Rate": "60Hz",
				"Ports":        "HDMI, USB-C",
			},
			Stock:  30,
			Active: true,
		},
	}

	for _, product := range products {
		if err := s.products.Create(ctx, product); err != nil {
			return err
		}
	}

	s.logger.Info("seeded products", zap.Int("count", len(products)))
	return nil
}
