package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductActive   ProductStatus = "ACTIVE"
	ProductDraft    ProductStatus = "DRAFT"
	ProductArchived ProductStatus = "ARCHIVED"
)

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

type Variant struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Value     string          `json:"value"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
}

type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	UserID    *string   `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"createdAt"`
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images"`
	CategoryID  *string         `json:"categoryId"`
	Category    *Category       `json:"category"`
	Stock       int             `json:"stock"`
	Status      ProductStatus   `json:"status"`
	Variants    []Variant       `json:"variants"`
	// Reviews holds approved reviews only when loaded for the catalog.
	Reviews   []Review  `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FindVariant returns the variant with id, or nil.
func (p *Product) FindVariant(id string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

// FirstImage is the image snapshotted onto order lines.
func (p *Product) FirstImage() *string {
	if len(p.Images) == 0 {
		return nil
	}
	img := p.Images[0]
	return &img
}

// CatalogProduct is the public listing view: raw reviews replaced by a summary.
type CatalogProduct struct {
	Product
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

func NewCatalogProduct(p Product) CatalogProduct {
	avg, n := RatingSummary(p.Reviews)
	p.Reviews = nil
	return CatalogProduct{Product: p, AverageRating: avg, ReviewCount: n}
}

// RatingSummary is the mean rating and count; 0 when there are none.
func RatingSummary(reviews []Review) (float64, int) {
	if len(reviews) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews)), len(reviews)
}

// ProductPatch lists the fields of a partial update; nil means unchanged.
type ProductPatch struct {
	Name        *string
	Slug        *string
	Description *string
	Price       *decimal.Decimal
	Images      *[]string
	CategoryID  *string
	Stock       *int
	Status      *ProductStatus
}

func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Slug == nil && p.Description == nil && p.Price == nil &&
		p.Images == nil && p.CategoryID == nil && p.Stock == nil && p.Status == nil
}
