package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/repository"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productSelect = `
	SELECT p.id, p.name, p.slug, p.description, p.price, p.images, p.category_id,
	       p.stock, p.status, p.created_at, p.updated_at,
	       c.id, c.name, c.slug, c.created_at
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	p := &entity.Product{}
	var (
		status                  string
		images                  []byte
		catID, catName, catSlug *string
		catCreated              *time.Time
	)
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &images, &p.CategoryID,
		&p.Stock, &status, &p.CreatedAt, &p.UpdatedAt,
		&catID, &catName, &catSlug, &catCreated)
	if err != nil {
		return nil, err
	}
	p.Status = entity.ProductStatus(status)
	p.Images = []string{}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return nil, fmt.Errorf("decode images: %w", err)
		}
	}
	if catID != nil {
		p.Category = &entity.Category{ID: *catID, Name: deref(catName), Slug: deref(catSlug)}
		if catCreated != nil {
			p.Category.CreatedAt = *catCreated
		}
	}
	p.Variants = []entity.Variant{}
	return p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func collectProducts(rows pgx.Rows) ([]entity.Product, error) {
	defer rows.Close()
	out := []entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, translate("scan product", err)
		}
		out = append(out, *p)
	}
	return out, translate("list products", rows.Err())
}

func (r *ProductRepository) ListAll(ctx context.Context) ([]entity.Product, error) {
	rows, err := r.pool.Query(ctx, productSelect+` ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, translate("list products", err)
	}
	products, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}
	if err := attachVariants(ctx, r.pool, products); err != nil {
		return nil, err
	}
	return products, nil
}

// escapeLike makes s match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *ProductRepository) ListActive(ctx context.Context, f repository.ProductFilter) ([]entity.Product, int, error) {
	where := []string{"p.status = 'ACTIVE'"}
	var args []any
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		where = append(where, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", n, n))
	}
	cond := " WHERE " + strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products p`+cond, args...).Scan(&total); err != nil {
		return nil, 0, translate("count products", err)
	}

	pageArgs := append(append([]any{}, args...), f.Limit, f.Offset)
	query := fmt.Sprintf(`%s%s ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d`,
		productSelect, cond, len(args)+1, len(args)+2)
	rows, err := r.pool.Query(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, translate("list active products", err)
	}
	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	if err := attachVariants(ctx, r.pool, products); err != nil {
		return nil, 0, err
	}
	if err := attachApprovedReviews(ctx, r.pool, products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return getProduct(ctx, r.pool, id)
}

// getProduct loads one product with category and variants.
func getProduct(ctx context.Context, q querier, id string) (*entity.Product, error) {
	p, err := scanProduct(q.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, translate("get product", err)
	}
	list := []entity.Product{*p}
	if err := attachVariants(ctx, q, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	images, err := json.Marshal(p.Images)
	if err != nil {
		return fmt.Errorf("encode images: %w", err)
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (id, name, slug, description, price, images, category_id, stock, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`, p.ID, p.Name, p.Slug, p.Description, p.Price, images, p.CategoryID, p.Stock, string(p.Status))
	if err := translate("create product", row.Scan(&p.CreatedAt, &p.UpdatedAt)); err != nil {
		return err
	}
	created, err := r.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	*p = *created
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, patch entity.ProductPatch) (*entity.Product, error) {
	var b setBuilder
	if patch.Name != nil {
		b.add("name", *patch.Name)
	}
	if patch.Slug != nil {
		b.add("slug", *patch.Slug)
	}
	if patch.Description != nil {
		b.add("description", *patch.Description)
	}
	if patch.Price != nil {
		b.add("price", *patch.Price)
	}
	if patch.Images != nil {
		images, err := json.Marshal(*patch.Images)
		if err != nil {
			return nil, fmt.Errorf("encode images: %w", err)
		}
		b.add("images", images)
	}
	if patch.CategoryID != nil {
		b.add("category_id", *patch.CategoryID)
	}
	if patch.Stock != nil {
		b.add("stock", *patch.Stock)
	}
	if patch.Status != nil {
		b.add("status", string(*patch.Status))
	}

	if !b.empty() {
		set, idArg := b.clause()
		tag, err := r.pool.Exec(ctx, `UPDATE products SET `+set+` WHERE id = $`+itoa(idArg), append(b.args, id)...)
		if err != nil {
			return nil, translate("update product", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, repository.ErrNotFound
		}
	}
	return r.GetByID(ctx, id)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return translate("delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func productIDs(products []entity.Product) []string {
	ids := make([]string, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	return ids
}

func attachVariants(ctx context.Context, q querier, products []entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	rows, err := q.Query(ctx, `
		SELECT id, product_id, name, value, price, stock
		FROM product_variants
		WHERE product_id = ANY($1)
		ORDER BY name, value
	`, productIDs(products))
	if err != nil {
		return translate("list variants", err)
	}
	defer rows.Close()

	byProduct := map[string][]entity.Variant{}
	for rows.Next() {
		var v entity.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.Value, &v.Price, &v.Stock); err != nil {
			return translate("scan variant", err)
		}
		byProduct[v.ProductID] = append(byProduct[v.ProductID], v)
	}
	if err := rows.Err(); err != nil {
		return translate("list variants", err)
	}
	for i := range products {
		if vs, ok := byProduct[products[i].ID]; ok {
			products[i].Variants = vs
		}
	}
	return nil
}

func attachApprovedReviews(ctx context.Context, q querier, products []entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	rows, err := q.Query(ctx, `
		SELECT id, product_id, user_id, rating, comment, approved, created_at
		FROM reviews
		WHERE approved AND product_id = ANY($1)
	`, productIDs(products))
	if err != nil {
		return translate("list reviews", err)
	}
	defer rows.Close()

	byProduct := map[string][]entity.Review{}
	for rows.Next() {
		var rv entity.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.Approved, &rv.CreatedAt); err != nil {
			return translate("scan review", err)
		}
		byProduct[rv.ProductID] = append(byProduct[rv.ProductID], rv)
	}
	if err := rows.Err(); err != nil {
		return translate("list reviews", err)
	}
	for i := range products {
		products[i].Reviews = byProduct[products[i].ID]
	}
	return nil
}
