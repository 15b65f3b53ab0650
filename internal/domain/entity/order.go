package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderConfirmed  OrderStatus = "CONFIRMED"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
	OrderRefunded   OrderStatus = "REFUNDED"
)

type PostalAddress struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

type Order struct {
	ID              string          `json:"id"`
	UserID          *string         `json:"userId"`
	User            *User           `json:"user,omitempty"`
	IsGuest         bool            `json:"isGuest"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	ShippingAddress PostalAddress   `json:"shippingAddress"`
	BillingAddress  PostalAddress   `json:"billingAddress"`
	Notes           *string         `json:"notes"`
	Total           decimal.Decimal `json:"total"`
	Status          OrderStatus     `json:"status"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// OrderItem snapshots product data at purchase time.
type OrderItem struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"orderId"`
	ProductID string          `json:"productId"`
	VariantID *string         `json:"variantId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     *string         `json:"image"`
}

// Subtotal is price times quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrderItem resolves a requested line against its product. A matching
// variant overrides price and extends the name; an unknown variant id is kept
// on the line but falls back to the product's price and name.
func NewOrderItem(p *Product, variantID *string, qty int) OrderItem {
	item := OrderItem{
		ProductID: p.ID,
		VariantID: variantID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  qty,
		Image:     p.FirstImage(),
	}
	if variantID != nil {
		if v := p.FindVariant(*variantID); v != nil {
			item.Price = v.Price
			item.Name = p.Name + " - " + v.Value
		}
	}
	return item
}

// OrderTotal sums the line subtotals.
func OrderTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}
