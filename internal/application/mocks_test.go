package application

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/repository"
	"github.com/oksasatya/storefront-api/internal/infrastructure/search"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	if u.ID == "" {
		u.ID = "new-user"
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*entity.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*entity.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetWithAddresses(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*entity.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockOrderTx struct{ mock.Mock }

func (m *mockOrderTx) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*entity.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderTx) CreateOrder(ctx context.Context, o *entity.Order) error {
	args := m.Called(ctx, o)
	if args.Error(0) == nil {
		o.ID = "order-1"
	}
	return args.Error(0)
}

// mockOrderRepo runs WithinTx callbacks against tx and records whether the
// callback's error would have rolled the transaction back.
type mockOrderRepo struct {
	mock.Mock
	tx         *mockOrderTx
	rolledBack bool
}

func (m *mockOrderRepo) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repository.OrderTx) error) error {
	err := fn(ctx, m.tx)
	m.rolledBack = err != nil
	return err
}

func (m *mockOrderRepo) List(ctx context.Context) ([]entity.Order, error) {
	args := m.Called(ctx)
	if o, ok := args.Get(0).([]entity.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.Order, error) {
	args := m.Called(ctx, id, status)
	if o, ok := args.Get(0).(*entity.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) SendOrderConfirmation(ctx context.Context, o *entity.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockNotifier) SendAdminOrderAlert(ctx context.Context, o *entity.Order) error {
	return m.Called(ctx, o).Error(0)
}

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) ListAll(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if p, ok := args.Get(0).([]entity.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) ListActive(ctx context.Context, f repository.ProductFilter) ([]entity.Product, int, error) {
	args := m.Called(ctx, f)
	if p, ok := args.Get(0).([]entity.Product); ok {
		return p, args.Int(1), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*entity.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) Create(ctx context.Context, p *entity.Product) error {
	args := m.Called(ctx, p)
	if p.ID == "" {
		p.ID = "new-product"
	}
	return args.Error(0)
}

func (m *mockProductRepo) Update(ctx context.Context, id string, patch entity.ProductPatch) (*entity.Product, error) {
	args := m.Called(ctx, id, patch)
	if p, ok := args.Get(0).(*entity.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockIndexer struct{ mock.Mock }

func (m *mockIndexer) Upsert(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockIndexer) Remove(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockIndexer) Search(ctx context.Context, q string, size int) ([]search.ProductDoc, error) {
	args := m.Called(ctx, q, size)
	if d, ok := args.Get(0).([]search.ProductDoc); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

type countingCache struct{ calls int }

func (c *countingCache) Invalidate(context.Context) { c.calls++ }

type mockBlogRepo struct{ mock.Mock }

func (m *mockBlogRepo) List(ctx context.Context) ([]entity.BlogPost, error) {
	args := m.Called(ctx)
	if p, ok := args.Get(0).([]entity.BlogPost); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBlogRepo) Create(ctx context.Context, p *entity.BlogPost) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockBlogRepo) Update(ctx context.Context, id string, patch entity.BlogPatch) (*entity.BlogPost, error) {
	args := m.Called(ctx, id, patch)
	if p, ok := args.Get(0).(*entity.BlogPost); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBlogRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
