package models

import (
	"time"
)

// User represents a registered member of the community
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never return password in JSON
	Organization string    `json:"organization" db:"organization"`
	DateOfBirth  string    `json:"dob" db:"dob"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// ValidRoles defines allowed user roles
var ValidRoles = map[string]bool{
	"admin":       true,
	"contributor": true,
	"user":        true,
}

// Role names used by the authorization guard
const (
	RoleAdmin       = "admin"
	RoleContributor = "contributor"
	RoleUser        = "user"
)

// UserForm is the payload for registering, adding or updating a user
type UserForm struct {
	Username     string `json:"username" binding:"required"`
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	Organization string `json:"organization"`
	DateOfBirth  string `json:"dob"`
	Role         string `json:"role" binding:"required"`
}
