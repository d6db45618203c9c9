package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commerce-service/internal/api/http/handlers"
	"github.com/spec-kit/commerce-service/internal/auth"
	"github.com/spec-kit/commerce-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Products       *handlers.ProductsHandler
	Cart           *handlers.CartHandler
	Wishlist       *handlers.WishlistHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	products := app.Group("/products")
	products.Get("/", cfg.Products.List)
	products.Get("/categories", cfg.Products.Categories)
	products.Get("/:id", cfg.Products.Get)
	products.Get("/:id/related", cfg.Products.Related)

	adminOnly := auth.RequireAuthorities(domain.RoleAdmin.Authority())
	products.Post("/", cfg.AuthMiddleware.Handle, adminOnly, cfg.Products.Create)
	products.Put("/:id", cfg.AuthMiddleware.Handle, adminOnly, cfg.Products.Update)
	products.Delete("/:id", cfg.AuthMiddleware.Handle, adminOnly, cfg.Products.Delete)

	cart := app.Group("/cart", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	cart.Get("/", cfg.Cart.Get)
	cart.Post("/items", cfg.Cart.Add)
	cart.Put("/items/:id", cfg.Cart.Update)
	cart.Delete("/items/:id", cfg.Cart.Remove)
	cart.Delete("/", cfg.Cart.Clear)

	wishlist := app.Group("/wishlist", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	wishlist.Get("/", cfg.Wishlist.Get)
	wishlist.Post("/items", cfg.Wishlist.Add)
	wishlist.Delete("/items/:id", cfg.Wishlist.Remove)
	wishlist.Delete("/", cfg.Wishlist.Clear)
}
