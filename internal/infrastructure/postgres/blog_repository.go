package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/repository"
)

type BlogRepository struct {
	pool *pgxpool.Pool
}

func NewBlogRepository(pool *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{pool: pool}
}

const blogColumns = `id, title, slug, content, excerpt, published, author_id, created_at, updated_at`

func scanPost(row pgx.Row, extra ...any) (*entity.BlogPost, error) {
	p := &entity.BlogPost{}
	dest := append([]any{&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.Published,
		&p.AuthorID, &p.CreatedAt, &p.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *BlogRepository) List(ctx context.Context) ([]entity.BlogPost, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT b.id, b.title, b.slug, b.content, b.excerpt, b.published, b.author_id,
		       b.created_at, b.updated_at, u.name, u.email
		FROM blog_posts b
		JOIN users u ON u.id = b.author_id
		ORDER BY b.created_at DESC
	`)
	if err != nil {
		return nil, translate("list posts", err)
	}
	defer rows.Close()

	posts := []entity.BlogPost{}
	for rows.Next() {
		author := &entity.Author{}
		p, err := scanPost(rows, &author.Name, &author.Email)
		if err != nil {
			return nil, translate("scan post", err)
		}
		p.Author = author
		posts = append(posts, *p)
	}
	return posts, translate("list posts", rows.Err())
}

func (r *BlogRepository) Create(ctx context.Context, p *entity.BlogPost) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO blog_posts (id, title, slug, content, excerpt, published, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, p.ID, p.Title, p.Slug, p.Content, p.Excerpt, p.Published, p.AuthorID)
	return translate("create post", row.Scan(&p.CreatedAt, &p.UpdatedAt))
}

func (r *BlogRepository) Update(ctx context.Context, id string, patch entity.BlogPatch) (*entity.BlogPost, error) {
	var b setBuilder
	if patch.Title != nil {
		b.add("title", *patch.Title)
	}
	if patch.Slug != nil {
		b.add("slug", *patch.Slug)
	}
	if patch.Content != nil {
		b.add("content", *patch.Content)
	}
	if patch.Excerpt != nil {
		b.add("excerpt", *patch.Excerpt)
	}
	if patch.Published != nil {
		b.add("published", *patch.Published)
	}

	if b.empty() {
		p, err := scanPost(r.pool.QueryRow(ctx, `SELECT `+blogColumns+` FROM blog_posts WHERE id = $1`, id))
		return p, translate("get post", err)
	}

	set, idArg := b.clause()
	query := `UPDATE blog_posts SET ` + set + ` WHERE id = $` + itoa(idArg) + ` RETURNING ` + blogColumns
	p, err := scanPost(r.pool.QueryRow(ctx, query, append(b.args, id)...))
	if err != nil {
		return nil, translate("update post", err)
	}
	return p, nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return translate("delete post", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
