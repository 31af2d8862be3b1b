// Package middleware はHTTPリクエスト共通のGinミドルウェアを提供します。
package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader はリクエストIDを受け渡すヘッダー名です。
const RequestIDHeader = "X-Request-Id"

const maxRequestIDLength = 128

type ctxKeyRequestID struct{}

// RequestID はリクエストIDを付与します。
// クライアントが送ったIDがあればそれを使い、なければUUIDを生成します。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if rid == "" || len(rid) > maxRequestIDLength {
			rid = uuid.NewString()
		}

		c.Header(RequestIDHeader, rid)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), ctxKeyRequestID{}, rid))
		c.Next()
	}
}

// GetRequestID はコンテキストからリクエストIDを取り出します。
func GetRequestID(ctx context.Context) string {
	if s, ok := ctx.Value(ctxKeyRequestID{}).(string); ok {
		return s
	}
	return ""
}
