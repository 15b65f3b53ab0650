package handlers

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/repository"
)

type memUsers struct {
	mu   sync.Mutex
	byID map[string]*entity.User
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]*entity.User{}} }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) GetWithAddresses(ctx context.Context, id string) (*entity.User, error) {
	return m.GetByID(ctx, id)
}

type memPosts struct {
	mu    sync.Mutex
	posts []*entity.BlogPost
}

func (m *memPosts) List(context.Context) ([]entity.BlogPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.BlogPost, 0, len(m.posts))
	for i := len(m.posts) - 1; i >= 0; i-- {
		out = append(out, *m.posts[i])
	}
	return out, nil
}

func (m *memPosts) Create(_ context.Context, p *entity.BlogPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.posts = append(m.posts, &cp)
	return nil
}

func (m *memPosts) Update(_ context.Context, id string, patch entity.BlogPatch) (*entity.BlogPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.posts {
		if p.ID != id {
			continue
		}
		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.Slug != nil {
			p.Slug = *patch.Slug
		}
		if patch.Content != nil {
			p.Content = *patch.Content
		}
		if patch.Excerpt != nil {
			p.Excerpt = patch.Excerpt
		}
		if patch.Published != nil {
			p.Published = *patch.Published
		}
		cp := *p
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memPosts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.posts {
		if p.ID == id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// memCatalog backs both the product and order repositories so orders see
// the same products the admin created.
type memCatalog struct {
	mu       sync.Mutex
	products []*entity.Product
	orders   []*entity.Order
}

func (m *memCatalog) add(p entity.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	m.products = append(m.products, &p)
}

func (m *memCatalog) find(id string) *entity.Product {
	for _, p := range m.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (m *memCatalog) ListAll(context.Context) ([]entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.Product, 0, len(m.products))
	for i := len(m.products) - 1; i >= 0; i-- {
		out = append(out, *m.products[i])
	}
	return out, nil
}

func (m *memCatalog) ListActive(_ context.Context, f repository.ProductFilter) ([]entity.Product, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	needle := strings.ToLower(f.Search)
	var matched []entity.Product
	for i := len(m.products) - 1; i >= 0; i-- {
		p := m.products[i]
		if p.Status != entity.ProductActive {
			continue
		}
		if f.CategoryID != "" && (p.CategoryID == nil || *p.CategoryID != f.CategoryID) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		matched = append(matched, *p)
	}
	total := len(matched)
	if f.Offset >= total {
		return []entity.Product{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return matched[f.Offset:end], total, nil
}

func (m *memCatalog) GetByID(_ context.Context, id string) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.find(id)
	if p == nil {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memCatalog) Create(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.products {
		if existing.Slug == p.Slug {
			return repository.ErrDuplicate
		}
	}
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.products = append(m.products, &cp)
	return nil
}

func (m *memCatalog) Update(_ context.Context, id string, patch entity.ProductPatch) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.find(id)
	if p == nil {
		return nil, repository.ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	cp := *p
	return &cp, nil
}

func (m *memCatalog) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.products {
		if p.ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// memOrders stages writes and keeps them only when fn succeeds.
type memOrders struct{ cat *memCatalog }

type memOrderTx struct {
	cat    *memCatalog
	staged []*entity.Order
}

func (t *memOrderTx) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return t.cat.GetByID(ctx, id)
}

func (t *memOrderTx) CreateOrder(_ context.Context, o *entity.Order) error {
	o.ID = uuid.NewString()
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	for i := range o.Items {
		o.Items[i].ID = uuid.NewString()
		o.Items[i].OrderID = o.ID
	}
	t.staged = append(t.staged, o)
	return nil
}

func (m memOrders) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repository.OrderTx) error) error {
	tx := &memOrderTx{cat: m.cat}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	m.cat.mu.Lock()
	m.cat.orders = append(m.cat.orders, tx.staged...)
	m.cat.mu.Unlock()
	return nil
}

func (m memOrders) List(context.Context) ([]entity.Order, error) {
	m.cat.mu.Lock()
	defer m.cat.mu.Unlock()
	out := make([]entity.Order, 0, len(m.cat.orders))
	for _, o := range m.cat.orders {
		out = append(out, *o)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m memOrders) UpdateStatus(_ context.Context, id string, status entity.OrderStatus) (*entity.Order, error) {
	m.cat.mu.Lock()
	defer m.cat.mu.Unlock()
	for _, o := range m.cat.orders {
		if o.ID == id {
			o.Status = status
			cp := *o
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m memOrders) count() int {
	m.cat.mu.Lock()
	defer m.cat.mu.Unlock()
	return len(m.cat.orders)
}

type memStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (m *memStore) Put(_ context.Context, name, _ string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = data
	return "/uploads/" + name, nil
}

func (m *memStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, name)
	return nil
}
