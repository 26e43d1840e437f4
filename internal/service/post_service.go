package service

import (
	"context"
	"fmt"
	"time"

	"github.com/causeshare-api/internal/models"
	"github.com/causeshare-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// postService is the concrete implementation of PostService
type postService struct {
	posts repository.PostRepository
	log   zerolog.Logger
}

func newPostService(posts repository.PostRepository, log zerolog.Logger) PostService {
	return &postService{
		posts: posts,
		log:   log.With().Str("service", "post").Logger(),
	}
}

// Create inserts a new post. The author is always the authenticated
// session user, never a form field.
func (s *postService) Create(ctx context.Context, form *models.PostForm, username string) (*models.Post, error) {
	now := time.Now()
	post := &models.Post{
		ID:           uuid.New().String(),
		Title:        form.Title,
		Organization: form.Organization,
		Cause:        form.Cause,
		Link:         form.Link,
		Description:  form.Description,
		Username:     username,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	inserted, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	if !inserted {
		return nil, ErrDuplicateTitle
	}

	s.log.Info().Str("title", post.Title).Str("username", username).Msg("Post created")
	return post, nil
}

// Get loads a post by identifier
func (s *postService) Get(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// List returns all posts
func (s *postService) List(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// Update overwrites the mutable fields of a post and stamps the
// modification time
func (s *postService) Update(ctx context.Context, id string, form *models.PostForm) (*models.Post, error) {
	existing, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	post := &models.Post{
		ID:           id,
		Title:        form.Title,
		Organization: form.Organization,
		Cause:        form.Cause,
		Link:         form.Link,
		Description:  form.Description,
		Username:     existing.Username,
		CreatedAt:    existing.CreatedAt,
		UpdatedAt:    time.Now(),
	}

	updated, err := s.posts.Update(ctx, post)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateTitle
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	if !updated {
		return nil, ErrNotFound
	}

	s.log.Info().Str("title", post.Title).Msg("Post updated")
	return post, nil
}

// Delete removes a post by identifier and returns the deleted record
func (s *postService) Delete(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}

	deleted, err := s.posts.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}
	if !deleted {
		return nil, ErrNotFound
	}

	s.log.Info().Str("title", post.Title).Msg("Post deleted")
	return post, nil
}
