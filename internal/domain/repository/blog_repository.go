package repository

import (
	"context"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
)

type BlogRepository interface {
	// List returns every post with its author, newest first.
	List(ctx context.Context) ([]entity.BlogPost, error)
	Create(ctx context.Context, p *entity.BlogPost) error
	Update(ctx context.Context, id string, patch entity.BlogPatch) (*entity.BlogPost, error)
	Delete(ctx context.Context, id string) error
}
