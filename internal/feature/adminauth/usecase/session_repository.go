package usecase

import (
	"context"

	"featureboard_backend/internal/feature/adminauth/domain/entity"
)

// SessionRepository abstracts the persistence layer for admin sessions.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SessionRepository interface {
	// Create persists a new session to the storage.
	Create(ctx context.Context, session *entity.Session) error

	// FindByID retrieves a session by its ID.
	// It returns ErrSessionNotFound when no session exists.
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Revoke marks a session as revoked by setting RevokedAt.
	Revoke(ctx context.Context, id string) error
}
