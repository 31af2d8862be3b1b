package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	adminadapters "featureboard_backend/internal/feature/adminauth/adapters"
	adminhandler "featureboard_backend/internal/feature/adminauth/transport/handler"
	adminusecase "featureboard_backend/internal/feature/adminauth/usecase"
	fradapters "featureboard_backend/internal/feature/featurerequest/adapters"
	frhandler "featureboard_backend/internal/feature/featurerequest/transport/handler"
	frusecase "featureboard_backend/internal/feature/featurerequest/usecase"
	jwtmw "featureboard_backend/internal/platform/jwt"
)

// Models returns the GORM models migrated when RUN_MIGRATIONS is enabled.
// admin_sessions is always included so the fallback store works when Redis goes away.
func Models() []any {
	return []any{
		&fradapters.FeatureRequestModel{},
		&adminadapters.SessionModel{},
	}
}

// NewFeatureRequestHandler wires the feature request repository, usecase and handler.
func NewFeatureRequestHandler(db *gorm.DB) *frhandler.FeatureRequestHandler {
	repo := fradapters.NewFeatureRequestRepository(db)
	uc := frusecase.NewFeatureRequestUsecase(repo)
	return frhandler.NewFeatureRequestHandler(uc)
}

// AdminAuthConfig holds the settings for the admin gate.
type AdminAuthConfig struct {
	Credentials adminusecase.Credentials
	JWTSecret   string
	SessionTTL  time.Duration
}

// LoadAdminAuthConfig reads the admin gate settings from the environment.
func LoadAdminAuthConfig() AdminAuthConfig {
	return AdminAuthConfig{
		Credentials: adminusecase.LoadCredentials(),
		JWTSecret:   jwtmw.LoadSecret(),
		SessionTTL:  adminusecase.LoadSessionTTL(),
	}
}

// AdminAuth bundles the pieces of the admin gate the router needs.
type AdminAuth struct {
	Handler  *adminhandler.AdminAuthHandler
	Usecase  *adminusecase.AdminAuthUsecase
	Sessions adminusecase.SessionRepository
	Secret   string
}

// NewAdminAuth wires the admin session store, token generator, usecase and handler.
func NewAdminAuth(cfg AdminAuthConfig, rdb *redis.Client, db *gorm.DB) *AdminAuth {
	sessions := NewSessionRepository(rdb, db)
	uc := adminusecase.NewAdminAuthUsecase(cfg.Credentials, sessions, jwtmw.NewGenerator(cfg.JWTSecret), cfg.SessionTTL)
	return &AdminAuth{
		Handler:  adminhandler.NewAdminAuthHandler(uc),
		Usecase:  uc,
		Sessions: sessions,
		Secret:   cfg.JWTSecret,
	}
}
