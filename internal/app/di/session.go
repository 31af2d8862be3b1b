// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	adminadapters "featureboard_backend/internal/feature/adminauth/adapters"
	"featureboard_backend/internal/feature/adminauth/usecase"
	"featureboard_backend/internal/platform/session"
)

// SessionKeyPrefix is the Redis key prefix for admin sessions.
const SessionKeyPrefix = "admin_session"

// NewSessionRepository creates a SessionRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the admin_sessions table.
func NewSessionRepository(rdb *redis.Client, db *gorm.DB) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, SessionKeyPrefix)
	}
	return adminadapters.NewSessionGorm(db)
}

// expiredSessionDeleter is implemented by stores that do not expire sessions on their own.
type expiredSessionDeleter interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// StartSessionSweeper periodically removes expired sessions from stores that need it.
// Redis expires keys by TTL, so nothing is started for it. Returns false if no sweeper was started.
func StartSessionSweeper(ctx context.Context, repo usecase.SessionRepository, interval time.Duration) bool {
	d, ok := repo.(expiredSessionDeleter)
	if !ok {
		return false
	}
	go RunPeriodically(ctx, interval, func(ctx context.Context) {
		n, err := d.DeleteExpired(ctx)
		if err != nil {
			slog.Error("failed to delete expired admin sessions", "error", err)
			return
		}
		if n > 0 {
			slog.Info("deleted expired admin sessions", "count", n)
		}
	})
	return true
}

// RunPeriodically calls fn every interval until ctx is cancelled.
func RunPeriodically(ctx context.Context, interval time.Duration, fn func(ctx context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}
