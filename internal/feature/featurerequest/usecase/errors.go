// Package usecase はfeaturerequestフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrValidation is returned when required input is missing or out of range.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when no feature request matches the given ID.
	ErrNotFound = errors.New("feature request not found")

	// ErrStore wraps failures of the underlying persistence layer.
	ErrStore = errors.New("store error")

	// ErrIdempotencyKeyConflict is returned by a repository when another record
	// already holds the given idempotency key.
	ErrIdempotencyKeyConflict = errors.New("idempotency key already used")
)
