// Package ratelimiter はクライアント単位のトークンバケットによるリクエスト制限を提供します。
package ratelimiter

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"featureboard_backend/internal/api"
)

// Config はレート制限の設定です。
type Config struct {
	RPS     float64       // 1秒あたりに補充されるトークン数
	Burst   int           // バケット容量
	IdleTTL time.Duration // この期間アクセスのないクライアントは破棄
}

// LoadConfig は RATE_LIMIT_RPS / RATE_LIMIT_BURST を読み込みます。
func LoadConfig() Config {
	cfg := Config{RPS: 1, Burst: 10, IdleTTL: 10 * time.Minute}
	if v, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64); err == nil && v > 0 {
		cfg.RPS = v
	}
	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST")); err == nil && v > 0 {
		cfg.Burst = v
	}
	return cfg
}

type visitor struct {
	limiter *rate.Limiter
	last    time.Time
}

// RateLimiter はクライアントIPごとに rate.Limiter を保持します。
type RateLimiter struct {
	cfg      Config
	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(cfg Config) *RateLimiter {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 10 * time.Minute
	}
	return &RateLimiter{
		cfg:      cfg,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

// Allow は key のバケットからトークンを1つ消費できるかを返します。
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(rl.cfg.RPS), rl.cfg.Burst)}
		rl.visitors[key] = v
	}
	now := rl.now()
	v.last = now
	return v.limiter.AllowN(now, 1)
}

// Sweep は IdleTTL を超えてアクセスのないクライアントを削除し、削除数を返します。
func (rl *RateLimiter) Sweep() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.cfg.IdleTTL)
	n := 0
	for k, v := range rl.visitors {
		if v.last.Before(cutoff) {
			delete(rl.visitors, k)
			n++
		}
	}
	return n
}

// Middleware は上限を超えたリクエストに429を返すGinミドルウェアです。
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.Allow(ip) {
			slog.Warn("rate limit exceeded", "remote_addr", ip, "path", c.FullPath())
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "too many requests"})
			return
		}
		c.Next()
	}
}
