//go:build integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/repository"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		if err := pg.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	host, err := pg.Host(ctx)
	require.NoError(t, err)
	port, err := pg.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())
	pool, err := NewPool(ctx, dsn, 4, 1, time.Hour)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "db", "migrations", "000001_init.up.sql"))
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err, "apply schema")
	return pool
}

func TestRepositories(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	users := NewUserRepository(pool)
	products := NewProductRepository(pool)
	orders := NewOrderRepository(pool)
	posts := NewBlogRepository(pool)

	name := "Admin"
	admin := &entity.User{Email: "admin@example.com", Password: "hash", Name: &name, Role: entity.RoleAdmin}
	require.NoError(t, users.Create(ctx, admin))
	require.NotEmpty(t, admin.ID)

	t.Run("users", func(t *testing.T) {
		got, err := users.GetByEmail(ctx, "admin@example.com")
		require.NoError(t, err)
		assert.Equal(t, admin.ID, got.ID)
		assert.Equal(t, entity.RoleAdmin, got.Role)

		err = users.Create(ctx, &entity.User{Email: "admin@example.com", Password: "x", Role: entity.RoleCustomer})
		assert.True(t, errors.Is(err, repository.ErrDuplicate))

		_, err = users.GetByID(ctx, "missing")
		assert.True(t, errors.Is(err, repository.ErrNotFound))

		withAddr, err := users.GetWithAddresses(ctx, admin.ID)
		require.NoError(t, err)
		assert.Empty(t, withAddr.Addresses)
	})

	shirt := &entity.Product{
		Name: "Blue Shirt", Slug: "blue-shirt", Description: "cotton", Price: decimal.RequireFromString("10.00"),
		Images: []string{"/uploads/a.jpg"}, Status: entity.ProductActive,
	}
	require.NoError(t, products.Create(ctx, shirt))
	draft := &entity.Product{Name: "Hidden", Slug: "hidden", Price: decimal.NewFromInt(3), Images: []string{}, Status: entity.ProductDraft}
	require.NoError(t, products.Create(ctx, draft))

	_, err := pool.Exec(ctx, `INSERT INTO product_variants (id, product_id, name, value, price, stock) VALUES ('v1', $1, 'Size', 'Large', 15, 1)`, shirt.ID)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO reviews (id, product_id, rating, approved) VALUES ('r1', $1, 3, true), ('r2', $1, 5, true), ('r3', $1, 1, false)`, shirt.ID)
	require.NoError(t, err)

	t.Run("products", func(t *testing.T) {
		bad := "nope"
		err := products.Create(ctx, &entity.Product{Name: "X", Slug: "x", Price: decimal.NewFromInt(1), Images: []string{}, CategoryID: &bad, Status: entity.ProductActive})
		assert.True(t, errors.Is(err, repository.ErrInvalidReference))

		err = products.Create(ctx, &entity.Product{Name: "Dup", Slug: "blue-shirt", Price: decimal.NewFromInt(1), Images: []string{}, Status: entity.ProductActive})
		assert.True(t, errors.Is(err, repository.ErrDuplicate))

		page, total, err := products.ListActive(ctx, repository.ProductFilter{Search: "COTTON", Limit: 50})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, page, 1)
		assert.Len(t, page[0].Variants, 1)
		assert.Len(t, page[0].Reviews, 2)

		_, total, err = products.ListActive(ctx, repository.ProductFilter{Search: "100%_", Limit: 50})
		require.NoError(t, err)
		assert.Equal(t, 0, total)

		all, err := products.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		status := entity.ProductArchived
		_, err = products.Update(ctx, "missing", entity.ProductPatch{Status: &status})
		assert.True(t, errors.Is(err, repository.ErrNotFound))
	})

	t.Run("catalog filters and paging", func(t *testing.T) {
		_, err := pool.Exec(ctx, `INSERT INTO categories (id, name, slug) VALUES ('mugs', 'Mugs', 'mugs')`)
		require.NoError(t, err)
		cat := "mugs"
		var mugs []*entity.Product
		for i := 1; i <= 3; i++ {
			p := &entity.Product{
				Name: fmt.Sprintf("Mug %d", i), Slug: fmt.Sprintf("mug-%d", i), Price: decimal.NewFromInt(5),
				Images: []string{}, CategoryID: &cat, Status: entity.ProductActive,
			}
			require.NoError(t, products.Create(ctx, p))
			mugs = append(mugs, p)
		}
		hiddenMug := &entity.Product{Name: "Mug Prototype", Slug: "mug-proto", Price: decimal.NewFromInt(5), Images: []string{}, CategoryID: &cat, Status: entity.ProductDraft}
		require.NoError(t, products.Create(ctx, hiddenMug))
		// pin newest-first order: mug-3, mug-2, mug-1
		for i, p := range mugs {
			_, err := pool.Exec(ctx, `UPDATE products SET created_at = NOW() + make_interval(mins => $2) WHERE id = $1`, p.ID, i+1)
			require.NoError(t, err)
		}

		_, total, err := products.ListActive(ctx, repository.ProductFilter{Limit: 50})
		require.NoError(t, err)
		assert.Equal(t, 4, total, "shirt and three mugs; drafts excluded")

		_, total, err = products.ListActive(ctx, repository.ProductFilter{Search: "mug", Limit: 50})
		require.NoError(t, err)
		assert.Equal(t, 3, total, "draft name matches but is not counted")

		page, total, err := products.ListActive(ctx, repository.ProductFilter{CategoryID: cat, Limit: 50})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, page, 3)
		for _, p := range page {
			require.NotNil(t, p.CategoryID)
			assert.Equal(t, cat, *p.CategoryID)
		}

		page, total, err = products.ListActive(ctx, repository.ProductFilter{CategoryID: cat, Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, 3, total, "total ignores paging")
		require.Len(t, page, 2)
		assert.Equal(t, "mug-2", page[0].Slug)
		assert.Equal(t, "mug-1", page[1].Slug)

		page, total, err = products.ListActive(ctx, repository.ProductFilter{CategoryID: cat, Limit: 2, Offset: 3})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Empty(t, page)

		_, total, err = products.ListActive(ctx, repository.ProductFilter{CategoryID: "missing", Limit: 50})
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("price constraints", func(t *testing.T) {
		err := products.Create(ctx, &entity.Product{Name: "Free", Slug: "free", Price: decimal.Zero, Images: []string{}, Status: entity.ProductActive})
		assert.True(t, errors.Is(err, repository.ErrInvalidValue), "check violation: %v", err)

		err = products.Create(ctx, &entity.Product{Name: "Gold", Slug: "gold", Price: decimal.NewFromInt(10_000_000_000), Images: []string{}, Status: entity.ProductActive})
		assert.True(t, errors.Is(err, repository.ErrInvalidValue), "numeric overflow: %v", err)
	})

	t.Run("order rollback on missing product", func(t *testing.T) {
		err := orders.WithinTx(ctx, func(ctx context.Context, tx repository.OrderTx) error {
			o := &entity.Order{IsGuest: true, Email: "g@example.com", Phone: "1", Total: decimal.NewFromInt(1)}
			if err := tx.CreateOrder(ctx, o); err != nil {
				return err
			}
			_, err := tx.GetProduct(ctx, "missing")
			return err
		})
		assert.True(t, errors.Is(err, repository.ErrNotFound))

		list, err := orders.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("orders", func(t *testing.T) {
		var placed *entity.Order
		err := orders.WithinTx(ctx, func(ctx context.Context, tx repository.OrderTx) error {
			p, err := tx.GetProduct(ctx, shirt.ID)
			if err != nil {
				return err
			}
			variant := "v1"
			items := []entity.OrderItem{entity.NewOrderItem(p, nil, 2), entity.NewOrderItem(p, &variant, 1)}
			placed = &entity.Order{
				UserID: &admin.ID, Email: admin.Email, Phone: "555",
				ShippingAddress: entity.PostalAddress{Street: "1 Main", City: "Town", State: "ST", Zip: "00001"},
				Items:           items,
				Total:           entity.OrderTotal(items),
			}
			placed.BillingAddress = placed.ShippingAddress
			return tx.CreateOrder(ctx, placed)
		})
		require.NoError(t, err)

		list, err := orders.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		got := list[0]
		assert.True(t, got.Total.Equal(decimal.NewFromInt(35)))
		require.Len(t, got.Items, 2)
		assert.Equal(t, "Blue Shirt", got.Items[0].Name)
		assert.Equal(t, "Blue Shirt - Large", got.Items[1].Name)
		require.NotNil(t, got.User)
		assert.Equal(t, admin.Email, got.User.Email)
		assert.Equal(t, "Town", got.ShippingAddress.City)

		updated, err := orders.UpdateStatus(ctx, placed.ID, entity.OrderShipped)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderShipped, updated.Status)

		_, err = orders.UpdateStatus(ctx, "missing", entity.OrderShipped)
		assert.True(t, errors.Is(err, repository.ErrNotFound))
	})

	t.Run("blog", func(t *testing.T) {
		post := &entity.BlogPost{Title: "Hello", Slug: "hello", Content: "body", AuthorID: admin.ID}
		require.NoError(t, posts.Create(ctx, post))

		list, err := posts.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.NotNil(t, list[0].Author)
		assert.Equal(t, admin.Email, list[0].Author.Email)

		published := true
		updated, err := posts.Update(ctx, post.ID, entity.BlogPatch{Published: &published})
		require.NoError(t, err)
		assert.True(t, updated.Published)

		require.NoError(t, posts.Delete(ctx, post.ID))
		assert.True(t, errors.Is(posts.Delete(ctx, post.ID), repository.ErrNotFound))
	})
}
