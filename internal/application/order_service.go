package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/repository"
	"github.com/oksasatya/storefront-api/pkg/apperror"
	"github.com/oksasatya/storefront-api/pkg/helpers"
)

// OrderNotifier sends the post-checkout emails.
type OrderNotifier interface {
	SendOrderConfirmation(ctx context.Context, o *entity.Order) error
	SendAdminOrderAlert(ctx context.Context, o *entity.Order) error
}

type OrderService struct {
	Orders   repository.OrderRepository
	Notifier OrderNotifier
	Logger   *logrus.Logger
}

func NewOrderService(orders repository.OrderRepository, notifier OrderNotifier, logger *logrus.Logger) *OrderService {
	return &OrderService{Orders: orders, Notifier: notifier, Logger: logger}
}

type OrderLineInput struct {
	ProductID string
	VariantID *string
	Quantity  int
}

type PlaceOrderInput struct {
	Items           []OrderLineInput
	ShippingAddress entity.PostalAddress
	BillingAddress  *entity.PostalAddress
	Phone           string
	Email           string
	Notes           *string
}

// Place resolves every line against the catalog and stores the order in one
// transaction. caller is nil for guest checkout.
func (s *OrderService) Place(ctx context.Context, caller *entity.Identity, in PlaceOrderInput) (*entity.Order, error) {
	order := &entity.Order{
		IsGuest:         caller == nil,
		Email:           in.Email,
		Phone:           in.Phone,
		ShippingAddress: in.ShippingAddress,
		BillingAddress:  in.ShippingAddress,
		Notes:           in.Notes,
		Status:          entity.OrderPending,
	}
	if caller != nil {
		uid := caller.UserID
		order.UserID = &uid
	}
	if in.BillingAddress != nil {
		order.BillingAddress = *in.BillingAddress
	}

	err := s.Orders.WithinTx(ctx, func(ctx context.Context, tx repository.OrderTx) error {
		items := make([]entity.OrderItem, 0, len(in.Items))
		for _, line := range in.Items {
			p, err := tx.GetProduct(ctx, line.ProductID)
			if errors.Is(err, repository.ErrNotFound) {
				return apperror.MissingReference(fmt.Sprintf("Product %s not found", line.ProductID))
			}
			if err != nil {
				return apperror.Internal("load order product", err)
			}
			items = append(items, entity.NewOrderItem(p, line.VariantID, line.Quantity))
		}
		order.Items = items
		order.Total = entity.OrderTotal(items)
		if err := tx.CreateOrder(ctx, order); err != nil {
			if serr := staleSession(err); serr != nil {
				return serr
			}
			return apperror.Internal("create order", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.Add(metricOrdersPlaced, 1)
	helpers.LogInfo(s.Logger, "order placed", logrus.Fields{
		"order_id": order.ID,
		"total":    order.Total.StringFixed(2),
		"guest":    order.UserID == nil,
	})
	s.notify(ctx, order)
	return order, nil
}

// notify attempts both emails; failures never fail the checkout.
func (s *OrderService) notify(ctx context.Context, o *entity.Order) {
	if s.Notifier == nil {
		return
	}
	fields := logrus.Fields{"order_id": o.ID}
	if err := s.Notifier.SendOrderConfirmation(ctx, o); err != nil {
		metrics.Add(metricOrderEmailFailures, 1)
		helpers.LogError(s.Logger, "order confirmation email failed", err, fields)
	}
	if err := s.Notifier.SendAdminOrderAlert(ctx, o); err != nil {
		metrics.Add(metricOrderEmailFailures, 1)
		helpers.LogError(s.Logger, "admin order alert email failed", err, fields)
	}
}

func (s *OrderService) List(ctx context.Context) ([]entity.Order, error) {
	orders, err := s.Orders.List(ctx)
	if err != nil {
		return nil, repoError("list orders", "Order not found", err)
	}
	return orders, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.Order, error) {
	o, err := s.Orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, repoError("update order status", "Order not found", err)
	}
	return o, nil
}
