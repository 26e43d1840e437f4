package repository

import (
	"context"
	"database/sql"

	"github.com/causeshare-api/internal/database"
	"github.com/causeshare-api/internal/models"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, username, first_name, last_name, email, password_hash, organization, dob, role, created_at, updated_at`

// Create inserts a new user unless the email is already registered.
// Returns false without inserting when the email is taken.
func (r *userRepo) Create(ctx context.Context, user *models.User) (bool, error) {
	query := `
		INSERT INTO users (id, username, first_name, last_name, email, password_hash, organization, dob, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (email) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.FirstName, user.LastName, user.Email,
		user.PasswordHash, user.Organization, user.DateOfBirth, user.Role,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

// GetByID retrieves a user by ID
func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email, the identity key used by the
// session middleware
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepo) scanOne(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.Email,
		&user.PasswordHash, &user.Organization, &user.DateOfBirth, &user.Role,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves all users
func (r *userRepo) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.Email,
			&user.PasswordHash, &user.Organization, &user.DateOfBirth, &user.Role,
			&user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

// Update overwrites all mutable fields of a user. created_at is never
// touched. Returns false when the id does not resolve.
func (r *userRepo) Update(ctx context.Context, user *models.User) (bool, error) {
	query := `
		UPDATE users
		SET username = $2, first_name = $3, last_name = $4, email = $5,
			password_hash = $6, organization = $7, dob = $8, role = $9,
			updated_at = $10
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.FirstName, user.LastName, user.Email,
		user.PasswordHash, user.Organization, user.DateOfBirth, user.Role,
		user.UpdatedAt,
	)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

// Delete removes a user by ID. Returns false when no row matched.
func (r *userRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

// Count returns the total number of users
func (r *userRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}
