package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/storefront-api/pkg/response"
)

// Registry collects API-wide middleware and feature modules, then mounts
// them under /api in one pass.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
	health      func(c *gin.Context) error
}

func NewRegistry(engine *gin.Engine) *Registry {
	api := engine.Group("/api")
	return &Registry{Engine: engine, API: api}
}

// Use appends middleware applied to every module route.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// HealthCheck sets the check behind GET /api/health.
func (r *Registry) HealthCheck(fn func(c *gin.Context) error) {
	r.health = fn
}

func (r *Registry) RegisterAll() {
	r.API.GET("/health", func(c *gin.Context) {
		if r.health != nil {
			if err := r.health(c); err != nil {
				response.Error(c, http.StatusServiceUnavailable, "Service unavailable", nil)
				return
			}
		}
		response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
	})

	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}

	r.Engine.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Not found", nil)
	})
}
