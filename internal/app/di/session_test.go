package di

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"featureboard_backend/internal/feature/adminauth/domain/entity"
	"featureboard_backend/internal/platform/db"
	"featureboard_backend/internal/platform/session"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.OpenDB(db.Config{Driver: db.DriverSQLite, SQLitePath: ":memory:", RunMigrations: true}, Models()...)
	require.NoError(t, err)
	return gdb
}

func TestNewSessionRepository(t *testing.T) {
	t.Run("redis when available", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer rdb.Close()

		repo := NewSessionRepository(rdb, nil)
		_, ok := repo.(*session.SessionRedis)
		assert.True(t, ok, "expected redis-backed repository, got %T", repo)
		assert.False(t, StartSessionSweeper(context.Background(), repo, time.Hour))
	})

	t.Run("database fallback", func(t *testing.T) {
		gdb := newTestDB(t)

		repo := NewSessionRepository(nil, gdb)
		_, ok := repo.(expiredSessionDeleter)
		assert.True(t, ok, "expected gorm-backed repository, got %T", repo)

		require.NoError(t, repo.Create(context.Background(), &entity.Session{
			ID: "expired", Username: "admin", CreatedAt: time.Now().Add(-2 * time.Hour), ExpiresAt: time.Now().Add(-time.Hour),
		}))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		assert.True(t, StartSessionSweeper(ctx, repo, 10*time.Millisecond))

		assert.Eventually(t, func() bool {
			_, err := repo.FindByID(context.Background(), "expired")
			return err != nil
		}, 2*time.Second, 20*time.Millisecond)
	})
}

func TestRunPeriodically(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	done := make(chan struct{})

	go func() {
		RunPeriodically(ctx, 5*time.Millisecond, func(context.Context) { calls.Add(1) })
		close(done)
	}()

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunPeriodically did not stop after cancel")
	}
}

func TestNewAdminAuth(t *testing.T) {
	gdb := newTestDB(t)

	a := NewAdminAuth(AdminAuthConfig{JWTSecret: "s"}, nil, gdb)

	assert.NotNil(t, a.Handler)
	assert.NotNil(t, a.Usecase)
	assert.NotNil(t, a.Sessions)
	assert.Equal(t, "s", a.Secret)
	assert.NotNil(t, NewFeatureRequestHandler(gdb))
}
