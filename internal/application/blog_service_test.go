package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/repository"
	"github.com/oksasatya/storefront-api/pkg/apperror"
)

func TestCreatePostWithStaleAuthor(t *testing.T) {
	repo := new(mockBlogRepo)
	repo.On("Create", mock.Anything, mock.Anything).
		Return(fmt.Errorf("insert post: %w (blog_posts_author_id_fkey)", repository.ErrInvalidReference))

	_, err := NewBlogService(repo, nil).Create(context.Background(), "deleted-admin", CreatePostInput{Title: "Hi", Slug: "hi", Content: "body"})
	ae := apperror.From(err)
	assert.Equal(t, apperror.KindUnauthorized, ae.Kind)
	assert.Nil(t, ae.Details)
}

func TestUpdateMissingPost(t *testing.T) {
	repo := new(mockBlogRepo)
	repo.On("Update", mock.Anything, "nope", mock.Anything).Return(nil, repository.ErrNotFound)

	_, err := NewBlogService(repo, nil).Update(context.Background(), "nope", entity.BlogPatch{Title: strPtr("x")})
	assert.Equal(t, apperror.KindNotFound, apperror.From(err).Kind)
}
