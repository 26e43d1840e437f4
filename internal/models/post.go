package models

import (
	"time"
)

// Post is a shared reference to an organization supporting a cause
type Post struct {
	ID           string    `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Organization string    `json:"organization" db:"organization"`
	Cause        string    `json:"cause" db:"cause"`
	Link         string    `json:"link" db:"link"`
	Description  string    `json:"description" db:"description"`
	Username     string    `json:"username" db:"username"` // authoring user, taken from the session
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// PostForm is the payload for creating or updating a post.
// The author is never part of the form; it comes from the session user.
type PostForm struct {
	Title        string `json:"title" binding:"required"`
	Organization string `json:"organization" binding:"required"`
	Cause        string `json:"cause" binding:"required"`
	Link         string `json:"link"`
	Description  string `json:"description"`
}
