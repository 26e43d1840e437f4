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

// authService is the concrete implementation of AuthService
type authService struct {
	users    repository.UserRepository
	sessions *auth.SessionService
	log      zerolog.Logger
}

func newAuthService(users repository.UserRepository, sessions *auth.SessionService, log zerolog.Logger) AuthService {
	return &authService{
		users:    users,
		sessions: sessions,
		log:      log.With().Str("service", "auth").Logger(),
	}
}

// Login authenticates an email/password pair and issues a session
// token. Unknown email and wrong password produce the same error so
// the response does not reveal which one failed.
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !auth.CheckPassword(password, user.PasswordHash) {
		s.log.Info().Str("email", email).Msg("Login rejected")
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(user.Email)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("email", user.Email).Str("role", user.Role).Msg("Login successful")
	return user, token, nil
}

// ResolveSession turns a session token into the current user. The user
// record is reloaded by email on every request, so role or profile
// changes take effect immediately. An unknown email (deleted account)
// resolves to anonymous.
func (s *authService) ResolveSession(ctx context.Context, token string) (*models.User, error) {
	email, err := s.sessions.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// BootstrapAdmin creates the initial admin account if the email is not
// registered yet. A no-op when the account already exists.
func (s *authService) BootstrapAdmin(ctx context.Context, email, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := time.Now()
	admin := &models.User{
		ID:           uuid.New().String(),
		Username:     "admin",
		FirstName:    "Site",
		LastName:     "Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	inserted, err := s.users.Create(ctx, admin)
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	if inserted {
		s.log.Info().Str("email", email).Msg("Bootstrap admin created")
	}
	return nil
}
