// Package http はHTTPサーバーの設定と終了処理を提供します。
package http

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// ServerConfig はHTTPサーバーの設定です。
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LoadServerConfig は PORT / HTTP_READ_TIMEOUT / HTTP_WRITE_TIMEOUT を読み込みます。
func LoadServerConfig() ServerConfig {
	cfg := ServerConfig{
		Addr:            ":8080",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
	if p := os.Getenv("PORT"); p != "" {
		cfg.Addr = ":" + p
	}
	if d, err := time.ParseDuration(os.Getenv("HTTP_READ_TIMEOUT")); err == nil && d > 0 {
		cfg.ReadTimeout = d
	}
	if d, err := time.ParseDuration(os.Getenv("HTTP_WRITE_TIMEOUT")); err == nil && d > 0 {
		cfg.WriteTimeout = d
	}
	return cfg
}

// NewServer はタイムアウトを設定した http.Server を生成します。
func NewServer(cfg ServerConfig, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}
}

// WaitAndShutdown は SIGINT / SIGTERM を受けるまで待ち、サーバーを停止します。
func WaitAndShutdown(log *slog.Logger, srv *http.Server, timeout time.Duration) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	<-ctx.Done()
	stop()

	log.Info("shutdown_start")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown_failed", "error", err)
		return
	}

	log.Info("shutdown_done")
}
