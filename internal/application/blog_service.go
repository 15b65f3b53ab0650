package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/repository"
)

type BlogService struct {
	Posts  repository.BlogRepository
	Logger *logrus.Logger
}

func NewBlogService(posts repository.BlogRepository, logger *logrus.Logger) *BlogService {
	return &BlogService{Posts: posts, Logger: logger}
}

type CreatePostInput struct {
	Title     string
	Slug      string
	Content   string
	Excerpt   *string
	Published bool
}

func (s *BlogService) List(ctx context.Context) ([]entity.BlogPost, error) {
	posts, err := s.Posts.List(ctx)
	if err != nil {
		return nil, repoError("list posts", "Post not found", err)
	}
	return posts, nil
}

// Create stores a post authored by authorID.
func (s *BlogService) Create(ctx context.Context, authorID string, in CreatePostInput) (*entity.BlogPost, error) {
	p := &entity.BlogPost{
		Title:     in.Title,
		Slug:      in.Slug,
		Content:   in.Content,
		Excerpt:   in.Excerpt,
		Published: in.Published,
		AuthorID:  authorID,
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		if serr := staleSession(err); serr != nil {
			return nil, serr
		}
		return nil, repoError("create post", "Post not found", err)
	}
	return p, nil
}

func (s *BlogService) Update(ctx context.Context, id string, patch entity.BlogPatch) (*entity.BlogPost, error) {
	p, err := s.Posts.Update(ctx, id, patch)
	if err != nil {
		return nil, repoError("update post", "Post not found", err)
	}
	return p, nil
}

func (s *BlogService) Delete(ctx context.Context, id string) error {
	return repoError("delete post", "Post not found", s.Posts.Delete(ctx, id))
}
