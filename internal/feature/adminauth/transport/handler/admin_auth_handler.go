// Package handler はadminauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"featureboard_backend/internal/api"
	"featureboard_backend/internal/feature/adminauth/usecase"
	jwtmw "featureboard_backend/internal/platform/jwt"
)

// AdminAuthUsecase は管理者認証のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AdminAuthUsecase interface {
	// Authenticate は認証情報を検証し、成功時にセッションとトークンを発行します。
	Authenticate(ctx context.Context, username, password string, meta usecase.ClientMeta) (*usecase.LoginResult, error)
	// Logout はセッションを失効させます。
	Logout(ctx context.Context, sessionID string) error
}

// AdminAuthHandler は管理者ログイン・ログアウトのHTTPリクエストを処理します。
type AdminAuthHandler struct {
	auth AdminAuthUsecase
}

// NewAdminAuthHandler はAdminAuthHandlerの新しいインスタンスを生成します。
func NewAdminAuthHandler(auth AdminAuthUsecase) *AdminAuthHandler {
	return &AdminAuthHandler{auth: auth}
}

// Login は POST /auth/admin を処理します。
// - リクエストJSONをAdminLoginRequestにバインド
// - 不正なJSONは400を返却
// - 空の認証情報を含む認証失敗時は401を返却
// - 認証情報が未設定の場合は500を返却
// - 成功時はトークンと有効期限付きで200を返却
func (h *AdminAuthHandler) Login(c *gin.Context) {
	var req api.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("admin login request is malformed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	meta := usecase.ClientMeta{UserAgent: c.Request.UserAgent(), IPAddress: c.ClientIP()}
	res, err := h.auth.Authenticate(c.Request.Context(), req.Username, req.Password, meta)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUnauthorized):
			slog.Warn("admin login failed", "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid credentials"})
		case errors.Is(err, usecase.ErrConfig), errors.Is(err, jwtmw.ErrMissingSecret):
			slog.Error("admin credentials are not configured")
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "admin credentials not configured"})
		default:
			slog.Error("admin login error", "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		}
		return
	}

	slog.Info("admin login successful", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.AdminLoginResponse{
		Success:   true,
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
	})
}

// Logout は POST /auth/admin/logout を処理します。
// AdminRequired ミドルウェアの後段で呼ばれ、検証済みのセッションを失効させます。
func (h *AdminAuthHandler) Logout(c *gin.Context) {
	sid := c.GetString(jwtmw.ContextSessionID)
	if sid == "" {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing session"})
		return
	}
	if err := h.auth.Logout(c.Request.Context(), sid); err != nil {
		slog.Error("admin logout error", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "logged out"})
}
