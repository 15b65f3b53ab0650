package application

import (
	"context"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/pkg/mailer"
	"github.com/oksasatya/storefront-api/pkg/mailer/templates"
)

// OrderMailer renders order emails into jobs for a mailer.Deliverer.
type OrderMailer struct {
	Deliverer   mailer.Deliverer
	AdminEmail  string
	CompanyName string
	SupportURL  string
}

func NewOrderMailer(d mailer.Deliverer, adminEmail, companyName, supportURL string) *OrderMailer {
	return &OrderMailer{Deliverer: d, AdminEmail: adminEmail, CompanyName: companyName, SupportURL: supportURL}
}

func (m *OrderMailer) SendOrderConfirmation(ctx context.Context, o *entity.Order) error {
	return m.Deliverer.Deliver(ctx, mailer.EmailJob{
		To:       o.Email,
		Template: templates.OrderConfirmation,
		Data:     templates.ToMap(m.data(o)),
	})
}

func (m *OrderMailer) SendAdminOrderAlert(ctx context.Context, o *entity.Order) error {
	return m.Deliverer.Deliver(ctx, mailer.EmailJob{
		To:       m.AdminEmail,
		Template: templates.AdminOrderAlert,
		Data:     templates.ToMap(m.data(o)),
	})
}

// data addresses the customer by email; orders carry no name.
func (m *OrderMailer) data(o *entity.Order) templates.OrderEmailData {
	a := o.ShippingAddress
	opts := []templates.Option{
		templates.WithCompany(m.CompanyName, m.SupportURL),
		templates.WithRecipient(o.Email, o.Email, o.Phone),
		templates.WithAddress(a.Street, a.City, a.State, a.Zip),
		templates.WithGuest(o.IsGuest),
		templates.WithPlacedAt(o.CreatedAt),
	}
	if o.Notes != nil {
		opts = append(opts, templates.WithNotes(*o.Notes))
	}
	for _, it := range o.Items {
		opts = append(opts, templates.WithLine(it.Name, it.Quantity, it.Price.StringFixed(2), it.Subtotal().StringFixed(2)))
	}
	return templates.NewOrderEmailData(o.ID, o.Total.StringFixed(2), opts...)
}
