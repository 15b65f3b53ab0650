package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/internal/application"
	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/pkg/response"
)

type ProductHandler struct {
	Svc    *application.ProductService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.ProductService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

type createProductRequest struct {
	Name        string   `json:"name" binding:"required,min=1"`
	Slug        string   `json:"slug" binding:"required,min=1"`
	Description *string  `json:"description" binding:"required"`
	Price       *float64 `json:"price" binding:"required,gt=0,lt=10000000000,cents"`
	Images      []string `json:"images" binding:"required"`
	CategoryID  *string  `json:"categoryId"`
	Stock       *int     `json:"stock" binding:"omitempty,gte=0"`
	Status      *string  `json:"status" binding:"omitempty,product_status"`
}

type updateProductRequest struct {
	ID          string    `json:"id"`
	Name        *string   `json:"name" binding:"omitempty,min=1"`
	Slug        *string   `json:"slug" binding:"omitempty,min=1"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price" binding:"omitempty,gt=0,lt=10000000000,cents"`
	Images      *[]string `json:"images"`
	CategoryID  *string   `json:"categoryId"`
	Stock       *int      `json:"stock" binding:"omitempty,gte=0"`
	Status      *string   `json:"status" binding:"omitempty,product_status"`
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"products": products})
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if !bindJSON(c, &req) {
		return
	}
	in := application.CreateProductInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: *req.Description,
		Price:       decimal.NewFromFloat(*req.Price),
		Images:      req.Images,
		CategoryID:  req.CategoryID,
	}
	if req.Stock != nil {
		in.Stock = *req.Stock
	}
	if req.Status != nil {
		in.Status = entity.ProductStatus(*req.Status)
	}
	p, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"product": p})
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req updateProductRequest
	if !decodeJSON(c, &req) {
		return
	}
	if req.ID == "" {
		response.Error(c, http.StatusBadRequest, "Product ID required", nil)
		return
	}
	if !validate(c, req) {
		return
	}
	patch := entity.ProductPatch{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Images:      req.Images,
		CategoryID:  req.CategoryID,
		Stock:       req.Stock,
	}
	if req.Price != nil {
		price := decimal.NewFromFloat(*req.Price)
		patch.Price = &price
	}
	if req.Status != nil {
		status := entity.ProductStatus(*req.Status)
		patch.Status = &status
	}
	p, err := h.Svc.Update(c.Request.Context(), req.ID, patch)
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"product": p})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		response.Error(c, http.StatusBadRequest, "Product ID required", nil)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"success": true})
}

// Search queries the product index. size defaults to 10.
func (h *ProductHandler) Search(c *gin.Context) {
	size, ok := queryInt(c, "size", 10, 1)
	if !ok {
		return
	}
	docs, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"products": docs})
}
