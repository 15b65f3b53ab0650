package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/repository"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// orderTx binds order operations to one pgx transaction.
type orderTx struct {
	tx pgx.Tx
}

func (r *OrderRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repository.OrderTx) error) error {
	return WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &orderTx{tx: tx})
	})
}

func (t *orderTx) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return getProduct(ctx, t.tx, id)
}

func (t *orderTx) CreateOrder(ctx context.Context, o *entity.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = entity.OrderPending
	}
	shipping, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return fmt.Errorf("encode shipping address: %w", err)
	}
	billing, err := json.Marshal(o.BillingAddress)
	if err != nil {
		return fmt.Errorf("encode billing address: %w", err)
	}

	row := t.tx.QueryRow(ctx, `
		INSERT INTO orders (id, user_id, is_guest, email, phone, shipping_address, billing_address, notes, total, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`, o.ID, o.UserID, o.IsGuest, o.Email, o.Phone, shipping, billing, o.Notes, o.Total, string(o.Status))
	if err := row.Scan(&o.CreatedAt, &o.UpdatedAt); err != nil {
		return translate("create order", err)
	}

	for i := range o.Items {
		it := &o.Items[i]
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		it.OrderID = o.ID
		_, err := t.tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, line_no, product_id, variant_id, name, price, quantity, image)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, it.ID, it.OrderID, i, it.ProductID, it.VariantID, it.Name, it.Price, it.Quantity, it.Image)
		if err != nil {
			return translate("create order item", err)
		}
	}
	return nil
}

const orderColumns = `o.id, o.user_id, o.is_guest, o.email, o.phone, o.shipping_address, o.billing_address,
	o.notes, o.total, o.status, o.created_at, o.updated_at`

func scanOrder(row pgx.Row, extra ...any) (*entity.Order, error) {
	o := &entity.Order{}
	var (
		status            string
		shipping, billing []byte
	)
	dest := append([]any{&o.ID, &o.UserID, &o.IsGuest, &o.Email, &o.Phone, &shipping, &billing,
		&o.Notes, &o.Total, &status, &o.CreatedAt, &o.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	if err := json.Unmarshal(shipping, &o.ShippingAddress); err != nil {
		return nil, fmt.Errorf("decode shipping address: %w", err)
	}
	if err := json.Unmarshal(billing, &o.BillingAddress); err != nil {
		return nil, fmt.Errorf("decode billing address: %w", err)
	}
	o.Items = []entity.OrderItem{}
	return o, nil
}

func (r *OrderRepository) List(ctx context.Context) ([]entity.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+orderColumns+`, u.id, u.email, u.name, u.phone, u.role
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC
	`)
	if err != nil {
		return nil, translate("list orders", err)
	}
	defer rows.Close()

	orders := []entity.Order{}
	for rows.Next() {
		var (
			uid, email, role *string
			name, phone      *string
		)
		o, err := scanOrder(rows, &uid, &email, &name, &phone, &role)
		if err != nil {
			return nil, translate("scan order", err)
		}
		if uid != nil {
			o.User = &entity.User{ID: *uid, Email: deref(email), Name: name, Phone: phone, Role: entity.Role(deref(role))}
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("list orders", err)
	}
	if err := attachItems(ctx, r.pool, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, `
		UPDATE orders o SET status = $1, updated_at = NOW()
		WHERE o.id = $2
		RETURNING `+orderColumns, string(status), id))
	if err != nil {
		return nil, translate("update order status", err)
	}
	list := []entity.Order{*o}
	if err := attachItems(ctx, r.pool, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

func attachItems(ctx context.Context, q querier, orders []entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
	}
	rows, err := q.Query(ctx, `
		SELECT id, order_id, product_id, variant_id, name, price, quantity, image
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, line_no
	`, ids)
	if err != nil {
		return translate("list order items", err)
	}
	defer rows.Close()

	byOrder := map[string][]entity.OrderItem{}
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.VariantID, &it.Name, &it.Price, &it.Quantity, &it.Image); err != nil {
			return translate("scan order item", err)
		}
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	if err := rows.Err(); err != nil {
		return translate("list order items", err)
	}
	for i := range orders {
		if items, ok := byOrder[orders[i].ID]; ok {
			orders[i].Items = items
		}
	}
	return nil
}
