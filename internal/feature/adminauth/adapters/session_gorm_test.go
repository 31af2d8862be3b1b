package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"featureboard_backend/internal/feature/adminauth/domain/entity"
	"featureboard_backend/internal/feature/adminauth/usecase"
)

// setupSessionTestDB prepares an in-memory SQLite database for session testing.
func setupSessionTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	// each pooled connection would otherwise open its own empty database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&SessionModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// seedSession creates a test session in the database for testing.
func seedSession(t *testing.T, db *gorm.DB, id string, expiresAt time.Time, revokedAt *time.Time) *entity.Session {
	t.Helper()

	session := &SessionModel{
		ID:        id,
		Username:  "admin",
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
		RevokedAt: revokedAt,
	}
	require.NoError(t, db.Create(session).Error, "failed to seed session")

	return session.ToEntity()
}

func TestNewSessionGorm(t *testing.T) {
	db := setupSessionTestDB(t)

	repo := NewSessionGorm(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestSessionGorm_Create(t *testing.T) {
	t.Parallel()

	t.Run("success: session creation", func(t *testing.T) {
		t.Parallel()
		db := setupSessionTestDB(t)
		repo := NewSessionGorm(db)

		session := &entity.Session{
			ID:        "session-create-001",
			Username:  "admin",
			UserAgent: "Mozilla/5.0",
			IPAddress: "192.168.1.1",
			CreatedAt: time.Now(),
			ExpiresAt: time.Now().Add(12 * time.Hour),
		}
		require.NoError(t, repo.Create(context.Background(), session))

		var found SessionModel
		require.NoError(t, db.Where("id = ?", session.ID).First(&found).Error)
		assert.Equal(t, "admin", found.Username)
		assert.Equal(t, "Mozilla/5.0", found.UserAgent)
		assert.Equal(t, "192.168.1.1", found.IPAddress)
		assert.Nil(t, found.RevokedAt)
	})

	t.Run("failure: duplicate id", func(t *testing.T) {
		t.Parallel()
		db := setupSessionTestDB(t)
		repo := NewSessionGorm(db)
		seedSession(t, db, "dup-session", time.Now().Add(time.Hour), nil)

		err := repo.Create(context.Background(), &entity.Session{
			ID:        "dup-session",
			Username:  "admin",
			CreatedAt: time.Now(),
			ExpiresAt: time.Now().Add(time.Hour),
		})
		assert.Error(t, err)
	})
}

func TestSessionGorm_FindByID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		seedID  string
		findID  string
		wantErr error
	}{
		{name: "success: existing session", seedID: "find-001", findID: "find-001"},
		{name: "failure: unknown session", seedID: "find-002", findID: "missing", wantErr: usecase.ErrSessionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			db := setupSessionTestDB(t)
			repo := NewSessionGorm(db)
			seeded := seedSession(t, db, tt.seedID, time.Now().Add(time.Hour), nil)

			got, err := repo.FindByID(context.Background(), tt.findID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, seeded.ID, got.ID)
			assert.Equal(t, seeded.Username, got.Username)
			assert.True(t, got.IsValid())
		})
	}
}

func TestSessionGorm_Revoke(t *testing.T) {
	t.Parallel()

	t.Run("success: revoke active session", func(t *testing.T) {
		t.Parallel()
		db := setupSessionTestDB(t)
		repo := NewSessionGorm(db)
		seedSession(t, db, "revoke-001", time.Now().Add(time.Hour), nil)

		require.NoError(t, repo.Revoke(context.Background(), "revoke-001"))

		got, err := repo.FindByID(context.Background(), "revoke-001")
		require.NoError(t, err)
		assert.True(t, got.IsRevoked())
		assert.False(t, got.IsValid())
	})

	t.Run("failure: unknown session", func(t *testing.T) {
		t.Parallel()
		db := setupSessionTestDB(t)
		repo := NewSessionGorm(db)

		err := repo.Revoke(context.Background(), "missing")
		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})
}

func TestSessionGorm_DeleteExpired(t *testing.T) {
	t.Parallel()

	db := setupSessionTestDB(t)
	repo := NewSessionGorm(db)
	seedSession(t, db, "expired-1", time.Now().Add(-time.Hour), nil)
	seedSession(t, db, "expired-2", time.Now().Add(-time.Minute), nil)
	seedSession(t, db, "active", time.Now().Add(time.Hour), nil)

	n, err := repo.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	var remaining int64
	require.NoError(t, db.Model(&SessionModel{}).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)

	_, err = repo.FindByID(context.Background(), "active")
	assert.NoError(t, err)
}
