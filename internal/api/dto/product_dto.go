package dto

import (
	"time"

	"github.com/spec-kit/commerce-service/internal/domain"
	"github.com/spec-kit/commerce-service/internal/service"
)

// ProductRequest payload for catalog mutations.
type ProductRequest struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          float64           `json:"price"`
	OriginalPrice  *float64          `json:"original_price,omitempty"`
	Category       string            `json:"category"`
	Image          string            `json:"image"`
	Rating         float64           `json:"rating"`
	OnSale         bool              `json:"on_sale"`
	Specifications map[string]string `json:"specifications"`
	Stock          int               `json:"stock"`
}

// ToDomain converts the request into a domain product.
func (r ProductRequest) ToDomain() *domain.Product {
	return &domain.Product{
		Name:           r.Name,
		Description:    r.Description,
		Price:          r.Price,
		OriginalPrice:  r.OriginalPrice,
		Category:       r.Category,
		Image:          r.Image,
		Rating:         r.Rating,
		OnSale:         r.OnSale,
		Specifications: r.Specifications,
		Stock:          r.Stock,
	}
}

// ProductResponse is the client view of a product.
type ProductResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          float64           `json:"price"`
	OriginalPrice  *float64          `json:"original_price,omitempty"`
	Category       string            `json:"category"`
	Image          string            `json:"image"`
	Rating         float64           `json:"rating"`
	OnSale         bool              `json:"on_sale"`
	Specifications map[string]string `json:"specifications"`
	Reviews        []domain.Review   `json:"reviews"`
	Stock          int               `json:"stock"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// NewProductResponse projects a domain product.
func NewProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		OriginalPrice:  p.OriginalPrice,
		Category:       p.Category,
		Image:          p.Image,
		Rating:         p.Rating,
		OnSale:         p.OnSale,
		Specifications: p.Specifications,
		Reviews:        p.Reviews,
		Stock:          p.Stock,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// NewProductResponses projects a slice of domain products.
func NewProductResponses(products []*domain.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, NewProductResponse(p))
	}
	return responses
}

// ProductPageResponse is one page of catalog results.
type ProductPageResponse struct {
	Content       []ProductResponse `json:"content"`
	Page          int               `json:"page"`
	Size          int               `json:"size"`
	TotalElements int64             `json:"total_elements"`
	TotalPages    int64             `json:"total_pages"`
}

// NewProductPageResponse projects a service page.
func NewProductPageResponse(page *service.ProductPage) ProductPageResponse {
	totalPages := page.Total / int64(page.Size)
	if page.Total%int64(page.Size) != 0 {
		totalPages++
	}
	return ProductPageResponse{
		Content:       NewProductResponses(page.Items),
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.Total,
		TotalPages:    totalPages,
	}
}
