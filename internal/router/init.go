package router

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/storefront-api/internal/application"
	"github.com/oksasatya/storefront-api/internal/container"
	pginfra "github.com/oksasatya/storefront-api/internal/infrastructure/postgres"
	"github.com/oksasatya/storefront-api/internal/infrastructure/search"
	handlers "github.com/oksasatya/storefront-api/internal/interface/http"
	"github.com/oksasatya/storefront-api/internal/interface/middleware"
	"github.com/oksasatya/storefront-api/internal/router/modules"
)

// Services groups the application layer built from the container.
type Services struct {
	Auth     *application.AuthService
	Blog     *application.BlogService
	Catalog  *application.CatalogService
	Products *application.ProductService
	Orders   *application.OrderService
	Uploads  *application.UploadService
}

func buildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	products := pginfra.NewProductRepository(pool)
	catalog := application.NewCatalogService(products, container.GetRedis(), cfg.ProductCacheTTL, logger)

	var index application.ProductIndexer
	if es := container.GetES(); es != nil {
		index = search.NewProductIndex(es, cfg.ESProductsIndex)
	}

	notifier := application.NewOrderMailer(container.GetDeliverer(), cfg.AdminAlertEmail, cfg.CompanyName, cfg.SupportURL)

	return Services{
		Auth:     application.NewAuthService(pginfra.NewUserRepository(pool), container.GetJWT(), logger),
		Blog:     application.NewBlogService(pginfra.NewBlogRepository(pool), logger),
		Catalog:  catalog,
		Products: application.NewProductService(products, index, catalog, logger),
		Orders:   application.NewOrderService(pginfra.NewOrderRepository(pool), notifier, logger),
		Uploads:  application.NewUploadService(container.GetStore(), logger),
	}
}

// InitModules builds every module from the container and adds it to the
// registry. Call once during startup, before RegisterAll.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	rdb := container.GetRedis()
	svc := buildServices()

	r.Use(middleware.Identify(svc.Auth))
	r.HealthCheck(func(c *gin.Context) error {
		return container.GetPGPool().Ping(c.Request.Context())
	})

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth, logger, cfg.CookieDomain, cfg.CookieSecure), rdb))
	r.Add(modules.NewCatalogModule(handlers.NewCatalogHandler(svc.Catalog, logger), rdb))
	r.Add(modules.NewOrderModule(handlers.NewOrderHandler(svc.Orders, logger), rdb))
	r.Add(modules.NewAdminModule(
		handlers.NewBlogHandler(svc.Blog, logger),
		handlers.NewProductHandler(svc.Products, logger),
		handlers.NewOrderHandler(svc.Orders, logger),
		handlers.NewUploadHandler(svc.Uploads, logger),
		rdb,
	))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(rdb))
	}
}
