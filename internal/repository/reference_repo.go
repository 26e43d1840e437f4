package repository

import (
	"context"

	"github.com/causeshare-api/internal/database"
	"github.com/causeshare-api/internal/models"
)

// roleRepo reads the roles reference collection
type roleRepo struct {
	db *database.DB
}

// NewRoleRepo creates a new role repository
func NewRoleRepo(db *database.DB) RoleRepository {
	return &roleRepo{db: db}
}

// List retrieves all role reference rows
func (r *roleRepo) List(ctx context.Context) ([]*models.Role, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, &role)
	}
	return roles, rows.Err()
}

// causeRepo reads the causes reference collection
type causeRepo struct {
	db *database.DB
}

// NewCauseRepo creates a new cause repository
func NewCauseRepo(db *database.DB) CauseRepository {
	return &causeRepo{db: db}
}

// List retrieves all cause reference rows
func (r *causeRepo) List(ctx context.Context) ([]*models.Cause, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM causes ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var causes []*models.Cause
	for rows.Next() {
		var cause models.Cause
		if err := rows.Scan(&cause.ID, &cause.Name); err != nil {
			return nil, err
		}
		causes = append(causes, &cause)
	}
	return causes, rows.Err()
}
