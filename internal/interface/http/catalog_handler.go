package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/internal/application"
	"github.com/oksasatya/storefront-api/internal/domain/repository"
	"github.com/oksasatya/storefront-api/pkg/response"
)

type CatalogHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewCatalogHandler(svc *application.CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Logger: logger}
}

// List serves the public catalog: ?search, ?categoryId, ?limit, ?offset.
func (h *CatalogHandler) List(c *gin.Context) {
	limit, ok := queryInt(c, "limit", application.DefaultCatalogLimit, 1)
	if !ok {
		return
	}
	offset, ok := queryInt(c, "offset", 0, 0)
	if !ok {
		return
	}
	page, err := h.Svc.List(c.Request.Context(), repository.ProductFilter{
		Search:     c.Query("search"),
		CategoryID: c.Query("categoryId"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}
