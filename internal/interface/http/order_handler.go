package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/internal/application"
	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/interface/middleware"
	"github.com/oksasatya/storefront-api/pkg/response"
)

type OrderHandler struct {
	Svc    *application.OrderService
	Logger *logrus.Logger
}

func NewOrderHandler(svc *application.OrderService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{Svc: svc, Logger: logger}
}

type orderLineRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	VariantID *string `json:"variantId"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
}

type addressRequest struct {
	Street string `json:"street" binding:"required"`
	City   string `json:"city" binding:"required"`
	State  string `json:"state" binding:"required"`
	Zip    string `json:"zip" binding:"required"`
}

func (a addressRequest) postal() entity.PostalAddress {
	return entity.PostalAddress{Street: a.Street, City: a.City, State: a.State, Zip: a.Zip}
}

// placeOrderRequest has no total: it is always computed from the catalog.
type placeOrderRequest struct {
	Items           []orderLineRequest `json:"items" binding:"required,min=1,dive"`
	ShippingAddress *addressRequest    `json:"shippingAddress" binding:"required"`
	BillingAddress  *addressRequest    `json:"billingAddress" binding:"omitempty"`
	Phone           string             `json:"phone" binding:"required"`
	Email           string             `json:"email" binding:"required,email"`
	Notes           *string            `json:"notes"`
}

type updateOrderStatusRequest struct {
	ID     string `json:"id" binding:"required"`
	Status string `json:"status" binding:"required,order_status"`
}

func (h *OrderHandler) Place(c *gin.Context) {
	var req placeOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	in := application.PlaceOrderInput{
		Items:           make([]application.OrderLineInput, 0, len(req.Items)),
		ShippingAddress: req.ShippingAddress.postal(),
		Phone:           req.Phone,
		Email:           req.Email,
		Notes:           req.Notes,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, application.OrderLineInput{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
		})
	}
	if req.BillingAddress != nil {
		billing := req.BillingAddress.postal()
		in.BillingAddress = &billing
	}
	order, err := h.Svc.Place(c.Request.Context(), middleware.CurrentIdentity(c), in)
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"order": order})
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"orders": orders})
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.Svc.UpdateStatus(c.Request.Context(), req.ID, entity.OrderStatus(req.Status))
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"order": order})
}
