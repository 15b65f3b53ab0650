package templates

import (
	"fmt"
	"strings"
	"time"
)

// Option pattern
type Option func(*OrderEmailData)

func WithCompany(name, supportURL string) Option {
	return func(d *OrderEmailData) {
		d.CompanyName = name
		d.SupportURL = supportURL
	}
}

func WithRecipient(name, email, phone string) Option {
	return func(d *OrderEmailData) {
		d.Name = name
		d.Email = email
		d.Phone = phone
	}
}

func WithNotes(notes string) Option {
	return func(d *OrderEmailData) { d.Notes = strings.TrimSpace(notes) }
}

func WithGuest(guest bool) Option { return func(d *OrderEmailData) { d.IsGuest = guest } }

func WithPlacedAt(t time.Time) Option {
	return func(d *OrderEmailData) {
		utc := t.UTC()
		d.PlacedAt = utc
		d.PlacedAtText = utc.Format("02 January 2006, 15:04")
	}
}

// WithAddress renders a one-line postal address.
func WithAddress(street, city, state, zip string) Option {
	return func(d *OrderEmailData) {
		d.ShippingAddress = fmt.Sprintf("%s, %s, %s %s", street, city, state, zip)
	}
}

func WithLine(name string, qty int, price, subtotal string) Option {
	return func(d *OrderEmailData) {
		d.Items = append(d.Items, OrderLine{Name: name, Quantity: qty, Price: price, Subtotal: subtotal})
	}
}

// NewOrderEmailData builds template data for an order id and total.
func NewOrderEmailData(orderID, total string, opts ...Option) OrderEmailData {
	d := OrderEmailData{OrderID: orderID, Total: total}
	for _, opt := range opts {
		opt(&d)
	}
	if d.CompanyName == "" {
		d.CompanyName = "Storefront"
	}
	if d.PlacedAt.IsZero() {
		WithPlacedAt(time.Now())(&d)
	}
	return d
}
