package api

import (
	"errors"
	"net/http"

	"github.com/causeshare-api/internal/models"
	"github.com/causeshare-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PostHandler handles post browsing and publishing endpoints
type PostHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(services *service.Services, log zerolog.Logger) *PostHandler {
	return &PostHandler{
		services: services,
		log:      log.With().Str("handler", "post").Logger(),
	}
}

// ListPosts handles GET /posts
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.services.Post.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list posts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list posts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetPost handles GET /posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.services.Post.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found."})
			return
		}
		h.log.Error().Err(err).Msg("Failed to get post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get post"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// ListCauses handles GET /causes and GET /share (the share form needs
// the cause labels to classify a new post)
func (h *PostHandler) ListCauses(c *gin.Context) {
	causes, err := h.services.Cause.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list causes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list causes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"causes": causes})
}

// CreatePost handles POST /share/posts. The author is the session
// user; a client-supplied username is never trusted.
func (h *PostHandler) CreatePost(c *gin.Context) {
	caller, ok := CurrentUser(c)
	if !ok {
		redirectToLogin(c)
		return
	}

	var form models.PostForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.services.Post.Create(c.Request.Context(), &form, caller.Username)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateTitle) {
			c.JSON(http.StatusConflict, gin.H{"error": service.ErrDuplicateTitle.Error()})
			return
		}
		h.log.Error().Err(err).Msg("Failed to create post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": post.Title + " post has been added.",
		"post":    post,
	})
}

// UpdatePost handles PUT /share/posts/:id
func (h *PostHandler) UpdatePost(c *gin.Context) {
	var form models.PostForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.services.Post.Update(c.Request.Context(), c.Param("id"), &form)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found."})
		case errors.Is(err, service.ErrDuplicateTitle):
			c.JSON(http.StatusConflict, gin.H{"error": service.ErrDuplicateTitle.Error()})
		default:
			h.log.Error().Err(err).Msg("Failed to update post")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update post"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": post.Title + " has been modified.",
		"post":    post,
	})
}

// DeletePost handles DELETE /admin/posts/:id
func (h *PostHandler) DeletePost(c *gin.Context) {
	post, err := h.services.Post.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found."})
			return
		}
		h.log.Error().Err(err).Msg("Failed to delete post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": post.Title + " has been deleted."})
}
