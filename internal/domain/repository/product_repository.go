package repository

import (
	"context"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
)

// ProductFilter selects ACTIVE products for the public catalog.
type ProductFilter struct {
	Search     string
	CategoryID string
	Limit      int
	Offset     int
}

type ProductRepository interface {
	// ListAll returns every product with category and variants, newest first.
	ListAll(ctx context.Context) ([]entity.Product, error)
	// ListActive returns one page of ACTIVE products with approved reviews
	// loaded, plus the total count for the same filter.
	ListActive(ctx context.Context, f ProductFilter) ([]entity.Product, int, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Create(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, id string, patch entity.ProductPatch) (*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
