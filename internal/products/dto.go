package product

import (
	"time"

	"github.com/avelarde/catalog-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO is the API representation of a product. Image is the resolved
// public URL, not the stored relative path.
type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Description *string         `json:"description"`
	Image       string          `json:"image"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type urlResolver interface {
	PublicURL(path string) string
}

// NewProductDTO maps a persisted row into the API shape.
func NewProductDTO(product *models.Product, resolver urlResolver) *ProductDTO {
	image := product.Image
	if resolver != nil {
		image = resolver.PublicURL(product.Image)
	}
	return &ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Stock:       product.Stock,
		Description: product.Description,
		Image:       image,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}
