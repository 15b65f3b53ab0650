package repository

import (
	"context"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetWithAddresses loads the user and its saved addresses.
	GetWithAddresses(ctx context.Context, id string) (*entity.User, error)
}
