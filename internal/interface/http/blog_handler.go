package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/internal/application"
	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/interface/middleware"
	"github.com/oksasatya/storefront-api/pkg/response"
)

type BlogHandler struct {
	Svc    *application.BlogService
	Logger *logrus.Logger
}

func NewBlogHandler(svc *application.BlogService, logger *logrus.Logger) *BlogHandler {
	return &BlogHandler{Svc: svc, Logger: logger}
}

type createPostRequest struct {
	Title     string  `json:"title" binding:"required,min=1"`
	Slug      string  `json:"slug" binding:"required,min=1"`
	Content   *string `json:"content" binding:"required"`
	Excerpt   *string `json:"excerpt"`
	Published *bool   `json:"published"`
}

type updatePostRequest struct {
	ID        string  `json:"id"`
	Title     *string `json:"title" binding:"omitempty,min=1"`
	Slug      *string `json:"slug" binding:"omitempty,min=1"`
	Content   *string `json:"content"`
	Excerpt   *string `json:"excerpt"`
	Published *bool   `json:"published"`
}

func (h *BlogHandler) List(c *gin.Context) {
	posts, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"posts": posts})
}

func (h *BlogHandler) Create(c *gin.Context) {
	var req createPostRequest
	if !bindJSON(c, &req) {
		return
	}
	in := application.CreatePostInput{
		Title:   req.Title,
		Slug:    req.Slug,
		Content: *req.Content,
		Excerpt: req.Excerpt,
	}
	if req.Published != nil {
		in.Published = *req.Published
	}
	post, err := h.Svc.Create(c.Request.Context(), middleware.CurrentIdentity(c).UserID, in)
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"post": post})
}

func (h *BlogHandler) Update(c *gin.Context) {
	var req updatePostRequest
	if !decodeJSON(c, &req) {
		return
	}
	if req.ID == "" {
		response.Error(c, http.StatusBadRequest, "Post ID required", nil)
		return
	}
	if !validate(c, req) {
		return
	}
	post, err := h.Svc.Update(c.Request.Context(), req.ID, entity.BlogPatch{
		Title:     req.Title,
		Slug:      req.Slug,
		Content:   req.Content,
		Excerpt:   req.Excerpt,
		Published: req.Published,
	})
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"post": post})
}

func (h *BlogHandler) Delete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		response.Error(c, http.StatusBadRequest, "Post ID required", nil)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"success": true})
}
