package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/storefront-api/internal/interface/http"
	"github.com/oksasatya/storefront-api/internal/interface/middleware"
)

// OrderModule serves checkout. Guests and signed-in customers share the route.
type OrderModule struct {
	Handler *handlers.OrderHandler
	Redis   *redis.Client
}

func NewOrderModule(h *handlers.OrderHandler, rdb *redis.Client) *OrderModule {
	return &OrderModule{Handler: h, Redis: rdb}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Redis, 20, time.Minute, middleware.KeyByIdentity(), nil)
	rg.POST("/orders", rl, m.Handler.Place)
}
