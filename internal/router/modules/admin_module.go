package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/storefront-api/internal/interface/http"
	"github.com/oksasatya/storefront-api/internal/interface/middleware"
)

// AdminModule wires the back-office routes. Every route requires an ADMIN
// identity, checked before the body is read.
type AdminModule struct {
	Blog     *handlers.BlogHandler
	Products *handlers.ProductHandler
	Orders   *handlers.OrderHandler
	Upload   *handlers.UploadHandler
	Redis    *redis.Client
}

func NewAdminModule(blog *handlers.BlogHandler, products *handlers.ProductHandler, orders *handlers.OrderHandler, upload *handlers.UploadHandler, rdb *redis.Client) *AdminModule {
	return &AdminModule{Blog: blog, Products: products, Orders: orders, Upload: upload, Redis: rdb}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIdentity(), nil)

	rg.POST("/upload", middleware.RequireAdmin(), rl, m.Upload.Upload)

	admin := rg.Group("/admin")
	admin.Use(middleware.RequireAdmin(), rl)
	{
		admin.GET("/blog", m.Blog.List)
		admin.POST("/blog", m.Blog.Create)
		admin.PUT("/blog", m.Blog.Update)
		admin.DELETE("/blog", m.Blog.Delete)

		admin.GET("/products", m.Products.List)
		admin.GET("/products/search", m.Products.Search)
		admin.POST("/products", m.Products.Create)
		admin.PUT("/products", m.Products.Update)
		admin.DELETE("/products", m.Products.Delete)

		admin.GET("/orders", m.Orders.List)
		admin.PUT("/orders", m.Orders.UpdateStatus)
	}
}
