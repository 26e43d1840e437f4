package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest is the payload for the login endpoint
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SessionClaims are the claims carried by the signed session cookie.
// The email is the identity key; the user record is reloaded from the
// store on every request.
type SessionClaims struct {
	Email string `json:"email"`
	Exp   int64  `json:"exp"`
	Iat   int64  `json:"iat"`
}

// GetExpirationTime implements jwt.Claims
func (c *SessionClaims) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.Exp, 0)), nil
}

// GetIssuedAt implements jwt.Claims
func (c *SessionClaims) GetIssuedAt() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.Iat, 0)), nil
}

// GetNotBefore implements jwt.Claims
func (c *SessionClaims) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil
}

// GetIssuer implements jwt.Claims
func (c *SessionClaims) GetIssuer() (string, error) {
	return "", nil
}

// GetSubject implements jwt.Claims
func (c *SessionClaims) GetSubject() (string, error) {
	return c.Email, nil
}

// GetAudience implements jwt.Claims
func (c *SessionClaims) GetAudience() (jwt.ClaimStrings, error) {
	return nil, nil
}
