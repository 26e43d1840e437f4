package auth

import (
	"fmt"
	"time"

	"github.com/causeshare-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// SessionService signs and verifies the session tokens carried in the
// session cookie. The token binds a request to an identity key (email).
type SessionService struct {
	secretKey []byte
	ttl       time.Duration
}

// NewSessionService creates a session service with the given signing
// secret and token lifetime.
func NewSessionService(secret string, ttl time.Duration) *SessionService {
	return &SessionService{
		secretKey: []byte(secret),
		ttl:       ttl,
	}
}

// TTL returns the configured session lifetime
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Issue mints a signed session token for the given email
func (s *SessionService) Issue(email string) (string, error) {
	now := time.Now()
	claims := &models.SessionClaims{
		Email: email,
		Exp:   now.Add(s.ttl).Unix(),
		Iat:   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

// Verify parses a session token and returns the identity email it
// carries. Expired, malformed or foreign-signed tokens are rejected.
func (s *SessionService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse session token: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid session token")
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok {
		return "", fmt.Errorf("invalid session claims")
	}

	if time.Now().Unix() > claims.Exp {
		return "", fmt.Errorf("session expired")
	}

	return claims.Email, nil
}
