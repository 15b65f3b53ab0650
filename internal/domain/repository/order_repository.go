package repository

import (
	"context"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
)

// OrderTx is the set of reads and writes available inside one order
// transaction.
type OrderTx interface {
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	CreateOrder(ctx context.Context, o *entity.Order) error
}

type OrderRepository interface {
	// WithinTx runs fn in a transaction; a returned error rolls it back.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx OrderTx) error) error
	// List returns every order with items and user, newest first.
	List(ctx context.Context) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.Order, error)
}
