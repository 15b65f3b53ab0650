package application

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/repository"
	"github.com/oksasatya/storefront-api/pkg/helpers"
)

const (
	DefaultCatalogLimit = 50
	catalogVersionKey   = "catalog:version"
)

// CatalogPage is one page of the public product listing.
type CatalogPage struct {
	Products []entity.CatalogProduct `json:"products"`
	Total    int                     `json:"total"`
	Limit    int                     `json:"limit"`
	Offset   int                     `json:"offset"`
}

// CatalogService serves the public listing, cached in Redis under keys that
// embed a generation counter. Admin product writes bump the counter.
type CatalogService struct {
	Products repository.ProductRepository
	Redis    *redis.Client
	TTL      time.Duration
	Logger   *logrus.Logger
}

func NewCatalogService(products repository.ProductRepository, rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *CatalogService {
	return &CatalogService{Products: products, Redis: rdb, TTL: ttl, Logger: logger}
}

func (s *CatalogService) cacheEnabled() bool {
	return s.Redis != nil && s.TTL > 0
}

func catalogKey(version int64, f repository.ProductFilter) string {
	q := url.Values{}
	q.Set("search", f.Search)
	q.Set("categoryId", f.CategoryID)
	q.Set("limit", strconv.Itoa(f.Limit))
	q.Set("offset", strconv.Itoa(f.Offset))
	return fmt.Sprintf("catalog:v%d:%s", version, q.Encode())
}

func (s *CatalogService) List(ctx context.Context, f repository.ProductFilter) (*CatalogPage, error) {
	var key string
	if s.cacheEnabled() {
		ver, err := helpers.RedisVersion(ctx, s.Redis, catalogVersionKey)
		if err != nil {
			helpers.LogWarn(s.Logger, "catalog cache version read failed", err, nil)
		} else {
			key = catalogKey(ver, f)
			var cached CatalogPage
			if ok, err := helpers.RedisGetJSON(ctx, s.Redis, key, &cached); err != nil {
				helpers.LogWarn(s.Logger, "catalog cache read failed", err, logrus.Fields{"key": key})
			} else if ok {
				metrics.Add(metricCatalogCacheHits, 1)
				return &cached, nil
			}
			metrics.Add(metricCatalogCacheMisses, 1)
		}
	}

	products, total, err := s.Products.ListActive(ctx, f)
	if err != nil {
		return nil, repoError("list catalog", "Product not found", err)
	}
	page := &CatalogPage{
		Products: make([]entity.CatalogProduct, 0, len(products)),
		Total:    total,
		Limit:    f.Limit,
		Offset:   f.Offset,
	}
	for _, p := range products {
		page.Products = append(page.Products, entity.NewCatalogProduct(p))
	}

	if key != "" {
		if err := helpers.RedisSetJSON(ctx, s.Redis, key, page, s.TTL); err != nil {
			helpers.LogWarn(s.Logger, "catalog cache write failed", err, logrus.Fields{"key": key})
		}
	}
	return page, nil
}

// Invalidate retires every cached page.
func (s *CatalogService) Invalidate(ctx context.Context) {
	if !s.cacheEnabled() {
		return
	}
	if err := helpers.RedisBump(ctx, s.Redis, catalogVersionKey); err != nil {
		helpers.LogWarn(s.Logger, "catalog cache invalidation failed", err, nil)
	}
}
