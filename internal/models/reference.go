package models

// Role is a reference row naming one of the fixed access roles
type Role struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Cause is a labeled category (e.g. "Environment") used to classify posts
type Cause struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
