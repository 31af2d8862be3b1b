package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// readinessTimeout は依存先ごとの確認に許す時間です。
const readinessTimeout = 2 * time.Second

// Check は依存先の疎通確認です。Name はレスポンスのキーに使われます。
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// Readiness は /readyz エンドポイントのハンドラーを返します。
// すべての Check が成功すれば200、いずれかが失敗すれば503を返します。
func Readiness(checks ...Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		status := http.StatusOK
		results := make(gin.H, len(checks))
		for _, chk := range checks {
			ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
			err := chk.Ping(ctx)
			cancel()

			if err != nil {
				slog.Warn("readiness check failed", "check", chk.Name, "error", err)
				results[chk.Name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			results[chk.Name] = "ok"
		}

		state := "ready"
		if status != http.StatusOK {
			state = "not ready"
		}
		c.JSON(status, gin.H{"status": state, "checks": results})
	}
}
