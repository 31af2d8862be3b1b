// Package router はHTTPルーティングを定義します。
package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	adminhandler "featureboard_backend/internal/feature/adminauth/transport/handler"
	frhandler "featureboard_backend/internal/feature/featurerequest/transport/handler"
	"featureboard_backend/internal/platform/http/handler"
	"featureboard_backend/internal/platform/http/middleware"
	jwtmw "featureboard_backend/internal/platform/jwt"
	"featureboard_backend/internal/platform/metrics"
	"featureboard_backend/internal/shared/ratelimiter"
)

// Handlers はルーターに登録するフィーチャーのハンドラーです。
type Handlers struct {
	FeatureRequests *frhandler.FeatureRequestHandler
	AdminAuth       *adminhandler.AdminAuthHandler
}

// Options はミドルウェアと管理者ゲートの設定です。nil のものは使用しません。
type Options struct {
	Logger          *slog.Logger
	Metrics         *metrics.Metrics
	RateLimiter     *ratelimiter.RateLimiter
	CORSOrigins     []string
	TrustedProxies  []string
	JWTSecret       string
	Sessions        jwtmw.SessionValidator
	ReadinessChecks []handler.Check
}

// NewRouter はルートとミドルウェアを設定したGinエンジンを返します。
func NewRouter(h Handlers, opt Options) *gin.Engine {
	r := gin.New()
	// ClientIP をレート制限のキーに使うため、信頼するプロキシは明示したものに限る
	if err := r.SetTrustedProxies(opt.TrustedProxies); err != nil {
		slog.Warn("invalid trusted proxies, forwarded headers are ignored", "error", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery(), middleware.RequestID())
	if opt.Logger != nil {
		r.Use(middleware.AccessLog(opt.Logger))
	}
	if opt.Metrics != nil {
		r.Use(opt.Metrics.Middleware())
		r.GET("/metrics", opt.Metrics.Handler())
	}
	r.Use(middleware.CORS(opt.CORSOrigins))

	// 書き込み系の公開エンドポイントのみ制限する
	var limit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if opt.RateLimiter != nil {
		limit = opt.RateLimiter.Middleware()
	}

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)
	r.GET("/readyz", handler.Readiness(opt.ReadinessChecks...))

	// 公開ボード
	r.GET("/feature-requests", h.FeatureRequests.List)
	r.POST("/feature-requests", limit, h.FeatureRequests.Create)
	r.POST("/feature-requests/:id/vote", limit, h.FeatureRequests.Vote)

	// 管理者ログイン（トークン発行）
	r.POST("/auth/admin", limit, h.AdminAuth.Login)

	// 管理者セッションが必要なルート
	requireAdmin := jwtmw.AdminRequired(opt.JWTSecret, opt.Sessions)
	r.POST("/auth/admin/logout", requireAdmin, h.AdminAuth.Logout)

	admin := r.Group("/admin")
	admin.Use(requireAdmin)
	{
		admin.GET("/feature-requests", h.FeatureRequests.AdminList)
		admin.GET("/feature-requests/stats", h.FeatureRequests.AdminStats)
		admin.PATCH("/feature-requests/:id", h.FeatureRequests.AdminUpdate)
		admin.DELETE("/feature-requests/:id", h.FeatureRequests.AdminDelete)
	}

	return r
}
