package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// LoadCORSOrigins は CORS_ALLOWED_ORIGINS（カンマ区切り）を読み込みます。
func LoadCORSOrigins() []string {
	return envList("CORS_ALLOWED_ORIGINS")
}

// LoadTrustedProxies は TRUSTED_PROXIES（カンマ区切りのIPまたはCIDR）を読み込みます。
// 未設定の場合は nil を返し、X-Forwarded-For 等のヘッダーを信頼しません。
func LoadTrustedProxies() []string {
	return envList("TRUSTED_PROXIES")
}

func envList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// CORS はブラウザの公開ボードと管理画面からの呼び出しを許可します。
// origins が空の場合はすべてのオリジンを許可します。
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader, "Retry-After"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
