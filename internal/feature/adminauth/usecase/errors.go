// Package usecase implements the business logic for the adminauth feature.
package usecase

import "errors"

var (
	// ErrConfig is returned when the admin credentials are not configured.
	ErrConfig = errors.New("admin credentials not configured")

	// ErrUnauthorized is returned when the submitted credentials do not match.
	ErrUnauthorized = errors.New("invalid credentials")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionRevoked is returned when attempting to use a revoked session.
	ErrSessionRevoked = errors.New("session has been revoked")

	// ErrSessionExpired is returned when attempting to use an expired session.
	ErrSessionExpired = errors.New("session has expired")
)
