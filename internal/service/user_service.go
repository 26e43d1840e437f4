package service

import (
	"context"
	"fmt"
	"time"

	"github.com/causeshare-api/internal/auth"
	"github.com/causeshare-api/internal/models"
	"github.com/causeshare-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// userService is the concrete implementation of UserService
type userService struct {
	users repository.UserRepository
	roles repository.RoleRepository
	log   zerolog.Logger
}

func newUserService(repos *repository.Repositories, log zerolog.Logger) UserService {
	return &userService{
		users: repos.User,
		roles: repos.Role,
		log:   log.With().Str("service", "user").Logger(),
	}
}

// Create registers a new user. Used by both self-registration and the
// admin add-user flow; the two differ only in who may call them.
func (s *userService) Create(ctx context.Context, form *models.UserForm) (*models.User, error) {
	if !models.ValidRoles[form.Role] {
		return nil, ErrInvalidRole
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New().String(),
		Username:     form.Username,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Email:        form.Email,
		PasswordHash: hash,
		Organization: form.Organization,
		DateOfBirth:  form.DateOfBirth,
		Role:         form.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	inserted, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if !inserted {
		return nil, ErrDuplicateEmail
	}

	s.log.Info().Str("email", user.Email).Str("role", user.Role).Msg("User created")
	return user, nil
}

// Get loads a user by identifier
func (s *userService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// List returns all users together with the role reference rows for
// the admin listing
func (s *userService) List(ctx context.Context) ([]*models.User, []*models.Role, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list users: %w", err)
	}
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return users, roles, nil
}

// Update overwrites all mutable fields of a user and stamps the
// modification time. The creation timestamp is preserved.
func (s *userService) Update(ctx context.Context, id string, form *models.UserForm) (*models.User, error) {
	if !models.ValidRoles[form.Role] {
		return nil, ErrInvalidRole
	}

	existing, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           id,
		Username:     form.Username,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Email:        form.Email,
		PasswordHash: hash,
		Organization: form.Organization,
		DateOfBirth:  form.DateOfBirth,
		Role:         form.Role,
		CreatedAt:    existing.CreatedAt,
		UpdatedAt:    time.Now(),
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if !updated {
		return nil, ErrNotFound
	}

	s.log.Info().Str("email", user.Email).Msg("User updated")
	return user, nil
}

// Delete removes a user by identifier and returns the deleted record
// so the handler can report which account was removed
func (s *userService) Delete(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	if !deleted {
		return nil, ErrNotFound
	}

	s.log.Info().Str("email", user.Email).Msg("User deleted")
	return user, nil
}
