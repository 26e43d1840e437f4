package mocks

import (
	"context"
	"sync"

	"github.com/causeshare-api/internal/models"
	"github.com/causeshare-api/internal/repository"
	"github.com/lib/pq"
)

// MockUserRepository is an in-memory implementation of UserRepository
type MockUserRepository struct {
	mu    sync.Mutex
	Users map[string]*models.User

	CreateFunc func(ctx context.Context, user *models.User) (bool, error)
}

// Verify interface compliance
var _ repository.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (bool, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.Email == user.Email {
			return false, nil
		}
	}
	copied := *user
	m.Users[user.ID] = &copied
	return true, nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.Users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]*models.User, 0, len(m.Users))
	for _, u := range m.Users {
		copied := *u
		users = append(users, &copied)
	}
	return users, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Users[user.ID]; !ok {
		return false, nil
	}
	// Mirror the storage-level unique index on email
	for id, u := range m.Users {
		if id != user.ID && u.Email == user.Email {
			return false, &pq.Error{Code: "23505"}
		}
	}
	copied := *user
	m.Users[user.ID] = &copied
	return true, nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Users[id]; !ok {
		return false, nil
	}
	delete(m.Users, id)
	return true, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Users), nil
}

// MockPostRepository is an in-memory implementation of PostRepository
type MockPostRepository struct {
	mu    sync.Mutex
	Posts map[string]*models.Post

	CreateFunc func(ctx context.Context, post *models.Post) (bool, error)
}

// Verify interface compliance
var _ repository.PostRepository = (*MockPostRepository)(nil)

func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{
		Posts: make(map[string]*models.Post),
	}
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) (bool, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, post)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Posts {
		if p.Title == post.Title {
			return false, nil
		}
	}
	copied := *post
	m.Posts[post.ID] = &copied
	return true, nil
}

func (m *MockPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.Posts[id]
	if !ok {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (m *MockPostRepository) GetByTitle(ctx context.Context, title string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Posts {
		if p.Title == title {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	posts := make([]*models.Post, 0, len(m.Posts))
	for _, p := range m.Posts {
		copied := *p
		posts = append(posts, &copied)
	}
	return posts, nil
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Posts[post.ID]; !ok {
		return false, nil
	}
	for id, p := range m.Posts {
		if id != post.ID && p.Title == post.Title {
			return false, &pq.Error{Code: "23505"}
		}
	}
	copied := *post
	m.Posts[post.ID] = &copied
	return true, nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Posts[id]; !ok {
		return false, nil
	}
	delete(m.Posts, id)
	return true, nil
}

func (m *MockPostRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Posts), nil
}

// MockRoleRepository serves the fixed role reference rows
type MockRoleRepository struct {
	Roles []*models.Role
}

// Verify interface compliance
var _ repository.RoleRepository = (*MockRoleRepository)(nil)

func NewMockRoleRepository() *MockRoleRepository {
	return &MockRoleRepository{
		Roles: []*models.Role{
			{ID: "role-admin", Name: "admin"},
			{ID: "role-contributor", Name: "contributor"},
			{ID: "role-user", Name: "user"},
		},
	}
}

func (m *MockRoleRepository) List(ctx context.Context) ([]*models.Role, error) {
	return m.Roles, nil
}

// MockCauseRepository serves cause reference rows
type MockCauseRepository struct {
	Causes []*models.Cause
}

// Verify interface compliance
var _ repository.CauseRepository = (*MockCauseRepository)(nil)

func NewMockCauseRepository() *MockCauseRepository {
	return &MockCauseRepository{
		Causes: []*models.Cause{
			{ID: "cause-env", Name: "Environment"},
			{ID: "cause-edu", Name: "Education"},
			{ID: "cause-health", Name: "Health"},
		},
	}
}

func (m *MockCauseRepository) List(ctx context.Context) ([]*models.Cause, error) {
	return m.Causes, nil
}

// NewRepositories bundles the mocks into the repository container
func NewRepositories() (*repository.Repositories, *MockUserRepository, *MockPostRepository) {
	users := NewMockUserRepository()
	posts := NewMockPostRepository()
	return &repository.Repositories{
		User:  users,
		Post:  posts,
		Role:  NewMockRoleRepository(),
		Cause: NewMockCauseRepository(),
	}, users, posts
}
