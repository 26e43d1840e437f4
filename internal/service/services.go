package service

import (
	"context"
	"errors"

	"github.com/causeshare-api/internal/auth"
	"github.com/causeshare-api/internal/config"
	"github.com/causeshare-api/internal/models"
	"github.com/causeshare-api/internal/repository"
	"github.com/rs/zerolog"
)

// Sentinel errors surfaced to the handler boundary
var (
	ErrDuplicateEmail     = errors.New("this email is already registered")
	ErrDuplicateTitle     = errors.New("a post with this title has already been shared")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("wrong email or password")
	ErrInvalidRole        = errors.New("role must be one of: admin, contributor, user")
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ResolveSession(ctx context.Context, token string) (*models.User, error)
	BootstrapAdmin(ctx context.Context, email, password string) error
}

// UserService defines the interface for user lifecycle operations
type UserService interface {
	Create(ctx context.Context, form *models.UserForm) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, []*models.Role, error)
	Update(ctx context.Context, id string, form *models.UserForm) (*models.User, error)
	Delete(ctx context.Context, id string) (*models.User, error)
}

// PostService defines the interface for post lifecycle operations
type PostService interface {
	Create(ctx context.Context, form *models.PostForm, username string) (*models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	Update(ctx context.Context, id string, form *models.PostForm) (*models.Post, error)
	Delete(ctx context.Context, id string) (*models.Post, error)
}

// CauseService defines the interface for the causes reference data
type CauseService interface {
	List(ctx context.Context) ([]*models.Cause, error)
}

// Services holds all service interfaces
type Services struct {
	Auth  AuthService
	User  UserService
	Post  PostService
	Cause CauseService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	sessions := auth.NewSessionService(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL)
	userSvc := newUserService(repos, log)

	return &Services{
		Auth:  newAuthService(repos.User, sessions, log),
		User:  userSvc,
		Post:  newPostService(repos.Post, log),
		Cause: newCauseService(repos.Cause),
	}
}
