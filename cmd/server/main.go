package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	redisv9 "github.com/redis/go-redis/v9"

	"featureboard_backend/internal/app/di"
	"featureboard_backend/internal/app/router"
	"featureboard_backend/internal/platform/db"
	platformhttp "featureboard_backend/internal/platform/http"
	"featureboard_backend/internal/platform/http/handler"
	"featureboard_backend/internal/platform/http/middleware"
	"featureboard_backend/internal/platform/metrics"
	platformredis "featureboard_backend/internal/platform/redis"
	"featureboard_backend/internal/shared/ratelimiter"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	logger := newLogger(os.Getenv("LOG_LEVEL"))
	slog.SetDefault(logger)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// db
	dbCfg := db.LoadConfigFromEnv()
	gdb, err := db.OpenDB(dbCfg, di.Models()...)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()
	readiness := []handler.Check{{Name: "database", Ping: sqlDB.PingContext}}

	// Redis（未設定・接続不可の場合はDBのセッションテーブルを使う）
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(platformredis.LoadConfig()); err != nil {
		if !errors.Is(err, platformredis.ErrNotConfigured) {
			slog.Warn("redis unavailable; admin sessions fall back to the database", "error", err)
		}
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close redis client", "error", err)
			}
		}()
		readiness = append(readiness, handler.Check{
			Name: "redis",
			Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 管理者ゲート
	authCfg := di.LoadAdminAuthConfig()
	if authCfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set; admin routes will answer 500")
	}
	if !authCfg.Credentials.Configured() {
		slog.Warn("ADMIN_USERNAME / ADMIN_PASSWORD are not set; admin login will answer 500")
	}
	auth := di.NewAdminAuth(authCfg, rdb, gdb)
	di.StartSessionSweeper(ctx, auth.Sessions, 15*time.Minute)

	// レート制限
	limiter := ratelimiter.NewRateLimiter(ratelimiter.LoadConfig())
	go di.RunPeriodically(ctx, time.Minute, func(context.Context) { limiter.Sweep() })

	// メトリクス
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(reg)

	// ルータ生成
	engine := router.NewRouter(router.Handlers{
		FeatureRequests: di.NewFeatureRequestHandler(gdb),
		AdminAuth:       auth.Handler,
	}, router.Options{
		Logger:          logger,
		Metrics:         m,
		RateLimiter:     limiter,
		CORSOrigins:     middleware.LoadCORSOrigins(),
		TrustedProxies:  middleware.LoadTrustedProxies(),
		JWTSecret:       auth.Secret,
		Sessions:        auth.Usecase,
		ReadinessChecks: readiness,
	})

	srvCfg := platformhttp.LoadServerConfig()
	srv := platformhttp.NewServer(srvCfg, engine)

	go func() {
		slog.Info("http_listen", "addr", srvCfg.Addr, "db_driver", dbCfg.Driver, "redis", rdb != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	platformhttp.WaitAndShutdown(logger, srv, srvCfg.ShutdownTimeout)
}

// newLogger は LOG_LEVEL（debug/info/warn/error）に応じたJSONロガーを返します。
func newLogger(level string) *slog.Logger {
	var lv slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lv = slog.LevelDebug
	case "warn":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lv})
	return slog.New(h).With(slog.String("app", "featureboard"))
}
