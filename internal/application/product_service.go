package application

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/repository"
	"github.com/oksasatya/storefront-api/internal/infrastructure/search"
	"github.com/oksasatya/storefront-api/pkg/apperror"
	"github.com/oksasatya/storefront-api/pkg/helpers"
)

// ProductIndexer mirrors products into the search index.
type ProductIndexer interface {
	Upsert(ctx context.Context, p *entity.Product) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]search.ProductDoc, error)
}

// CacheInvalidator drops cached catalog pages.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

type ProductService struct {
	Products repository.ProductRepository
	Index    ProductIndexer
	Cache    CacheInvalidator
	Logger   *logrus.Logger
}

func NewProductService(products repository.ProductRepository, index ProductIndexer, cache CacheInvalidator, logger *logrus.Logger) *ProductService {
	return &ProductService{Products: products, Index: index, Cache: cache, Logger: logger}
}

type CreateProductInput struct {
	Name        string
	Slug        string
	Description string
	Price       decimal.Decimal
	Images      []string
	CategoryID  *string
	Stock       int
	Status      entity.ProductStatus
}

func (s *ProductService) List(ctx context.Context) ([]entity.Product, error) {
	products, err := s.Products.ListAll(ctx)
	if err != nil {
		return nil, repoError("list products", "Product not found", err)
	}
	return products, nil
}

func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (*entity.Product, error) {
	if in.Status == "" {
		in.Status = entity.ProductActive
	}
	if in.Images == nil {
		in.Images = []string{}
	}
	p := &entity.Product{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		Price:       in.Price,
		Images:      in.Images,
		CategoryID:  in.CategoryID,
		Stock:       in.Stock,
		Status:      in.Status,
	}
	if err := s.Products.Create(ctx, p); err != nil {
		if rerr := refError("categoryId", err); rerr != nil {
			return nil, rerr
		}
		return nil, repoError("create product", "Product not found", err)
	}
	s.synced(ctx, p)
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id string, patch entity.ProductPatch) (*entity.Product, error) {
	p, err := s.Products.Update(ctx, id, patch)
	if err != nil {
		if rerr := refError("categoryId", err); rerr != nil {
			return nil, rerr
		}
		return nil, repoError("update product", "Product not found", err)
	}
	s.synced(ctx, p)
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.Products.Delete(ctx, id); err != nil {
		return repoError("delete product", "Product not found", err)
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			metrics.Add(metricIndexFailures, 1)
			helpers.LogWarn(s.Logger, "search index delete failed", err, logrus.Fields{"product_id": id})
		}
	}
	if s.Cache != nil {
		s.Cache.Invalidate(ctx)
	}
	return nil
}

// Search queries the product index by free text.
func (s *ProductService) Search(ctx context.Context, q string, size int) ([]search.ProductDoc, error) {
	if s.Index == nil {
		return []search.ProductDoc{}, nil
	}
	docs, err := s.Index.Search(ctx, q, size)
	if err != nil {
		return nil, apperror.Internal("search products", err)
	}
	return docs, nil
}

// synced pushes a written product to the index and retires cached pages.
// Index failures are only logged.
func (s *ProductService) synced(ctx context.Context, p *entity.Product) {
	if s.Index != nil {
		if err := s.Index.Upsert(ctx, p); err != nil {
			metrics.Add(metricIndexFailures, 1)
			helpers.LogWarn(s.Logger, "search index upsert failed", err, logrus.Fields{"product_id": p.ID})
		}
	}
	if s.Cache != nil {
		s.Cache.Invalidate(ctx)
	}
}
