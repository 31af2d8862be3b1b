// Package jwtmw provides admin token generation and the gin middleware that
// validates it.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingSecret is returned when no signing secret is configured.
var ErrMissingSecret = errors.New("jwt secret is not configured")

// Generator defines the interface for JWT token generation.
type Generator interface {
	// GenerateToken creates a signed JWT token bound to an admin session.
	GenerateToken(sessionID, subject string, expiresAt time.Time) (string, error)
}

// generator implements the Generator interface.
type generator struct {
	secret []byte
}

var _ Generator = (*generator)(nil)

// NewGenerator creates a new JWT generator with the provided secret.
func NewGenerator(secret string) *generator {
	return &generator{secret: []byte(secret)}
}

// GenerateToken creates a signed JWT token with standard claims plus the session ID.
func (g *generator) GenerateToken(sessionID, subject string, expiresAt time.Time) (string, error) {
	if len(g.secret) == 0 {
		return "", ErrMissingSecret
	}

	claims := jwt.MapClaims{
		"sub": subject,
		"sid": sessionID,
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
