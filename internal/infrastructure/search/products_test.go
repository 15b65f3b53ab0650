package search

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
)

func TestNewProductDoc(t *testing.T) {
	cat := "c1"
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	doc := NewProductDoc(&entity.Product{
		ID: "p1", Name: "Shirt", Slug: "shirt", Price: decimal.RequireFromString("19.99"),
		Status: entity.ProductActive, CategoryID: &cat, Stock: 3, CreatedAt: ts, UpdatedAt: ts,
	})
	assert.Equal(t, 19.99, doc.Price)
	assert.Equal(t, "c1", doc.CategoryID)
	assert.Equal(t, "ACTIVE", doc.Status)
	assert.Equal(t, "2024-01-02T03:04:05Z", doc.CreatedAt)
}

func TestSearchQuery(t *testing.T) {
	q := SearchQuery("shirt", 5)
	assert.Equal(t, 5, q["size"])
	mm := q["query"].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "shirt", mm["query"])
}

func TestDisabledIndexIsNoop(t *testing.T) {
	var x *ProductIndex
	ctx := context.Background()
	require.NoError(t, x.Ensure(ctx))
	require.NoError(t, x.Upsert(ctx, &entity.Product{ID: "p1"}))
	require.NoError(t, x.Remove(ctx, "p1"))
	docs, err := x.Search(ctx, "anything", 10)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
