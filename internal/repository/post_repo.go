package repository

import (
	"context"
	"database/sql"

	"github.com/causeshare-api/internal/database"
	"github.com/causeshare-api/internal/models"
)

// postRepo is the concrete implementation of PostRepository
type postRepo struct {
	db *database.DB
}

// NewPostRepo creates a new post repository
func NewPostRepo(db *database.DB) PostRepository {
	return &postRepo{db: db}
}

const postColumns = `id, title, organization, cause, link, description, username, created_at, updated_at`

// Create inserts a new post unless the title is already used.
// Returns false without inserting when the title is taken.
func (r *postRepo) Create(ctx context.Context, post *models.Post) (bool, error) {
	query := `
		INSERT INTO posts (id, title, organization, cause, link, description, username, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (title) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Organization, post.Cause, post.Link,
		post.Description, post.Username, post.CreatedAt, post.UpdatedAt,
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

// GetByID retrieves a post by ID
func (r *postRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByTitle retrieves a post by its title
func (r *postRepo) GetByTitle(ctx context.Context, title string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE title = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, title))
}

func (r *postRepo) scanOne(row *sql.Row) (*models.Post, error) {
	var post models.Post
	err := row.Scan(
		&post.ID, &post.Title, &post.Organization, &post.Cause, &post.Link,
		&post.Description, &post.Username, &post.CreatedAt, &post.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves all posts, newest first
func (r *postRepo) List(ctx context.Context) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		var post models.Post
		err := rows.Scan(
			&post.ID, &post.Title, &post.Organization, &post.Cause, &post.Link,
			&post.Description, &post.Username, &post.CreatedAt, &post.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		posts = append(posts, &post)
	}
	return posts, rows.Err()
}

// Update overwrites all mutable fields of a post. created_at and the
// authoring username are never touched. Returns false when the id does
// not resolve.
func (r *postRepo) Update(ctx context.Context, post *models.Post) (bool, error) {
	query := `
		UPDATE posts
		SET title = $2, organization = $3, cause = $4, link = $5,
			description = $6, updated_at = $7
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Organization, post.Cause, post.Link,
		post.Description, post.UpdatedAt,
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

// Delete removes a post by ID. Returns false when no row matched.
func (r *postRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

// Count returns the total number of posts
func (r *postRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts").Scan(&count)
	return count, err
}
