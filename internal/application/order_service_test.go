package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/repository"
	"github.com/oksasatya/storefront-api/pkg/apperror"
)

func strPtr(s string) *string { return &s }

func shirt() *entity.Product {
	return &entity.Product{
		ID:     "p1",
		Name:   "Shirt",
		Price:  decimal.RequireFromString("10.00"),
		Images: []string{"/uploads/shirt.jpg"},
		Variants: []entity.Variant{
			{ID: "v1", ProductID: "p1", Value: "Large", Price: decimal.RequireFromString("15.00")},
		},
	}
}

func mug() *entity.Product {
	return &entity.Product{ID: "p2", Name: "Mug", Price: decimal.RequireFromString("5.00")}
}

func address() entity.PostalAddress {
	return entity.PostalAddress{Street: "1 Main", City: "Springfield", State: "IL", Zip: "62701"}
}

func newOrderService() (*OrderService, *mockOrderRepo, *mockNotifier) {
	repo := &mockOrderRepo{tx: new(mockOrderTx)}
	notifier := new(mockNotifier)
	return NewOrderService(repo, notifier, nil), repo, notifier
}

func TestPlaceGuestOrder(t *testing.T) {
	s, repo, notifier := newOrderService()
	repo.tx.On("GetProduct", mock.Anything, "p1").Return(shirt(), nil)
	repo.tx.On("GetProduct", mock.Anything, "p2").Return(mug(), nil)
	repo.tx.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
	notifier.On("SendOrderConfirmation", mock.Anything, mock.Anything).Return(nil)
	notifier.On("SendAdminOrderAlert", mock.Anything, mock.Anything).Return(nil)

	o, err := s.Place(context.Background(), nil, PlaceOrderInput{
		Items: []OrderLineInput{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
		ShippingAddress: address(),
		Phone:           "555",
		Email:           "a@b.com",
	})
	require.NoError(t, err)
	assert.True(t, o.IsGuest)
	assert.Nil(t, o.UserID)
	assert.Equal(t, "25", o.Total.String())
	assert.Equal(t, o.ShippingAddress, o.BillingAddress)
	assert.Equal(t, entity.OrderPending, o.Status)
	assert.Len(t, o.Items, 2)
	assert.False(t, repo.rolledBack)
	notifier.AssertExpectations(t)
}

func TestPlaceOrderWithVariantForCaller(t *testing.T) {
	s, repo, notifier := newOrderService()
	repo.tx.On("GetProduct", mock.Anything, "p1").Return(shirt(), nil)
	repo.tx.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
	notifier.On("SendOrderConfirmation", mock.Anything, mock.Anything).Return(nil)
	notifier.On("SendAdminOrderAlert", mock.Anything, mock.Anything).Return(nil)

	billing := entity.PostalAddress{Street: "2 Side", City: "X", State: "Y", Zip: "1"}
	o, err := s.Place(context.Background(), &entity.Identity{UserID: "u1", Role: entity.RoleCustomer}, PlaceOrderInput{
		Items:           []OrderLineInput{{ProductID: "p1", VariantID: strPtr("v1"), Quantity: 2}},
		ShippingAddress: address(),
		BillingAddress:  &billing,
		Email:           "a@b.com",
	})
	require.NoError(t, err)
	assert.False(t, o.IsGuest)
	assert.Equal(t, "u1", *o.UserID)
	assert.Equal(t, "Shirt - Large", o.Items[0].Name)
	assert.Equal(t, "15", o.Items[0].Price.String())
	assert.Equal(t, "30", o.Total.String())
	assert.Equal(t, billing, o.BillingAddress)
}

func TestPlaceOrderMissingProductRollsBack(t *testing.T) {
	s, repo, notifier := newOrderService()
	repo.tx.On("GetProduct", mock.Anything, "p1").Return(shirt(), nil)
	repo.tx.On("GetProduct", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)

	_, err := s.Place(context.Background(), nil, PlaceOrderInput{
		Items: []OrderLineInput{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "ghost", Quantity: 1},
		},
		ShippingAddress: address(),
		Email:           "a@b.com",
	})
	ae := apperror.From(err)
	assert.Equal(t, apperror.KindMissingReference, ae.Kind)
	assert.Equal(t, "Product ghost not found", ae.Message)
	assert.True(t, repo.rolledBack)
	repo.tx.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "SendOrderConfirmation", mock.Anything, mock.Anything)
}

func TestPlaceOrderLogsPlacement(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	repo := &mockOrderRepo{tx: new(mockOrderTx)}
	s := NewOrderService(repo, nil, logger)
	repo.tx.On("GetProduct", mock.Anything, "p2").Return(mug(), nil)
	repo.tx.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)

	_, err := s.Place(context.Background(), nil, PlaceOrderInput{
		Items:           []OrderLineInput{{ProductID: "p2", Quantity: 3}},
		ShippingAddress: address(),
		Email:           "a@b.com",
	})
	require.NoError(t, err)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "order placed", entry.Message)
	assert.Equal(t, "order-1", entry.Data["order_id"])
	assert.Equal(t, "15.00", entry.Data["total"])
	assert.Equal(t, true, entry.Data["guest"])
}

func TestPlaceOrderEmailFailureIsIgnored(t *testing.T) {
	s, repo, notifier := newOrderService()
	repo.tx.On("GetProduct", mock.Anything, "p2").Return(mug(), nil)
	repo.tx.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
	notifier.On("SendOrderConfirmation", mock.Anything, mock.Anything).Return(errors.New("mailgun down"))
	notifier.On("SendAdminOrderAlert", mock.Anything, mock.Anything).Return(nil)

	o, err := s.Place(context.Background(), nil, PlaceOrderInput{
		Items:           []OrderLineInput{{ProductID: "p2", Quantity: 3}},
		ShippingAddress: address(),
		Email:           "a@b.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "order-1", o.ID)
	// the admin alert is still attempted
	notifier.AssertCalled(t, "SendAdminOrderAlert", mock.Anything, mock.Anything)
}

func TestUpdateStatusMissingOrder(t *testing.T) {
	s, repo, _ := newOrderService()
	repo.On("UpdateStatus", mock.Anything, "nope", entity.OrderShipped).Return(nil, repository.ErrNotFound)

	_, err := s.UpdateStatus(context.Background(), "nope", entity.OrderShipped)
	ae := apperror.From(err)
	assert.Equal(t, apperror.KindNotFound, ae.Kind)
	assert.Equal(t, "Order not found", ae.Message)
}

func TestPlaceOrderForDeletedUserIsUnauthorized(t *testing.T) {
	s, repo, notifier := newOrderService()
	repo.tx.On("GetProduct", mock.Anything, "p2").Return(mug(), nil)
	repo.tx.On("CreateOrder", mock.Anything, mock.Anything).
		Return(fmt.Errorf("insert order: %w (orders_user_id_fkey)", repository.ErrInvalidReference))

	_, err := s.Place(context.Background(), &entity.Identity{UserID: "gone", Role: entity.RoleCustomer}, PlaceOrderInput{
		Items:           []OrderLineInput{{ProductID: "p2", Quantity: 1}},
		ShippingAddress: address(),
		Email:           "a@b.com",
	})
	ae := apperror.From(err)
	assert.Equal(t, apperror.KindUnauthorized, ae.Kind)
	assert.Nil(t, ae.Details)
	assert.True(t, repo.rolledBack)
	notifier.AssertNotCalled(t, "SendOrderConfirmation", mock.Anything, mock.Anything)
}
