package repository

import (
	"context"

	"github.com/causeshare-api/internal/database"
	"github.com/causeshare-api/internal/models"
)

// UserRepository defines the interface for the users collection.
// Create and Update are conditional: Create reports false when the
// email is already taken (storage-level uniqueness, no read-then-write
// window), Update and Delete report false when the id does not resolve.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (bool, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// PostRepository defines the interface for the posts collection
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) (bool, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetByTitle(ctx context.Context, title string) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// RoleRepository defines the interface for the roles reference collection
type RoleRepository interface {
	List(ctx context.Context) ([]*models.Role, error)
}

// CauseRepository defines the interface for the causes reference collection
type CauseRepository interface {
	List(ctx context.Context) ([]*models.Cause, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User  UserRepository
	Post  PostRepository
	Role  RoleRepository
	Cause CauseRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:  NewUserRepo(db),
		Post:  NewPostRepo(db),
		Role:  NewRoleRepo(db),
		Cause: NewCauseRepo(db),
	}
}
