package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"featureboard_backend/internal/api"
	"featureboard_backend/internal/feature/adminauth/usecase"
)

// ContextSessionID is the gin context key holding the validated admin session ID.
const ContextSessionID = "adminSessionID"

// SessionValidator checks that a session is still active on the server.
type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionID string) error
}

// AdminRequired returns a Gin middleware function that validates the admin
// token and the server-side session it refers to.
func AdminRequired(secret string, sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Server misconfiguration (JWT_SECRET not set)
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Error: "server misconfigured"})
			return
		}

		// 3. Parse and verify JWT signature and expiry
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// Only HMAC is accepted
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		}, jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid token"})
			return
		}

		// 4. Extract the session ID and check it server-side
		claims, ok := token.Claims.(jwt.MapClaims)
		sid, _ := claims["sid"].(string)
		if !ok || sid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid token"})
			return
		}
		if err := sessions.ValidateSession(c.Request.Context(), sid); err != nil {
			if isSessionRejected(err) {
				slog.Warn("admin session rejected", "error", err, "remote_addr", c.ClientIP())
				c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "session expired or revoked"})
				return
			}
			slog.Error("admin session lookup failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
			return
		}

		c.Set(ContextSessionID, sid)
		c.Next()
	}
}

func isSessionRejected(err error) bool {
	return errors.Is(err, usecase.ErrSessionNotFound) ||
		errors.Is(err, usecase.ErrSessionRevoked) ||
		errors.Is(err, usecase.ErrSessionExpired)
}
