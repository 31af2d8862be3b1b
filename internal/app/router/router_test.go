package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"featureboard_backend/internal/app/di"
	adminusecase "featureboard_backend/internal/feature/adminauth/usecase"
	"featureboard_backend/internal/platform/db"
	"featureboard_backend/internal/platform/http/handler"
	"featureboard_backend/internal/platform/metrics"
	"featureboard_backend/internal/shared/ratelimiter"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
}

// newTestServer wires the real repositories, usecases and handlers against an in-memory SQLite database.
func newTestServer(t *testing.T, limiter *ratelimiter.RateLimiter, trustedProxies ...string) *testServer {
	t.Helper()

	gdb, err := db.OpenDB(db.Config{Driver: db.DriverSQLite, SQLitePath: ":memory:", RunMigrations: true}, di.Models()...)
	require.NoError(t, err)

	auth := di.NewAdminAuth(di.AdminAuthConfig{
		Credentials: adminusecase.Credentials{Username: "admin", Password: "s3cret"},
		JWTSecret:   "router-test-secret",
	}, nil, gdb)

	engine := NewRouter(Handlers{
		FeatureRequests: di.NewFeatureRequestHandler(gdb),
		AdminAuth:       auth.Handler,
	}, Options{
		Metrics:        metrics.NewMetrics(prometheus.NewRegistry()),
		RateLimiter:    limiter,
		TrustedProxies: trustedProxies,
		JWTSecret:      auth.Secret,
		Sessions:       auth.Usecase,
		ReadinessChecks: []handler.Check{{Name: "database", Ping: func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}}},
	})
	return &testServer{t: t, engine: engine}
}

func (s *testServer) do(method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func (s *testServer) list(path string, headers map[string]string) []map[string]any {
	s.t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	var out []map[string]any
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (s *testServer) login() map[string]string {
	s.t.Helper()

	w, body := s.do(http.MethodPost, "/auth/admin", gin.H{"username": "admin", "password": "s3cret"}, nil)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(s.t, true, body["success"])
	token, _ := body["token"].(string)
	require.NotEmpty(s.t, token)
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestRouter_FeatureRequestLifecycle(t *testing.T) {
	s := newTestServer(t, nil)
	admin := s.login()

	w, created := s.do(http.MethodPost, "/feature-requests", gin.H{
		"title":       "Batch resize",
		"description": "Allow resizing multiple files at once",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Batch resize", created["title"])
	assert.Equal(t, "PENDING", created["status"])
	assert.Equal(t, "MEDIUM", created["priority"])
	assert.Equal(t, float64(0), created["votes"])
	assert.Equal(t, false, created["isHidden"])
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	var voted map[string]any
	for i := 0; i < 3; i++ {
		w, voted = s.do(http.MethodPost, "/feature-requests/"+id+"/vote", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, float64(3), voted["votes"])

	w, updated := s.do(http.MethodPatch, "/admin/feature-requests/"+id, gin.H{"status": "COMPLETED"}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "COMPLETED", updated["status"])
	assert.Equal(t, float64(3), updated["votes"])

	w, ack := s.do(http.MethodDelete, "/admin/feature-requests/"+id, nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Feature request deleted successfully", ack["message"])

	w, _ = s.do(http.MethodPost, "/feature-requests/"+id+"/vote", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_UntrustedFieldsIgnored(t *testing.T) {
	s := newTestServer(t, nil)

	w, created := s.do(http.MethodPost, "/feature-requests", gin.H{
		"title":       "Sneaky",
		"description": "Tries to preset moderation fields",
		"status":      "COMPLETED",
		"votes":       1000,
		"isHidden":    true,
		"id":          "00000000-0000-0000-0000-000000000001",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "PENDING", created["status"])
	assert.Equal(t, float64(0), created["votes"])
	assert.Equal(t, false, created["isHidden"])
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000001", created["id"])
}

func TestRouter_HiddenRequestsOnlyVisibleToAdmin(t *testing.T) {
	s := newTestServer(t, nil)
	admin := s.login()

	_, a := s.do(http.MethodPost, "/feature-requests", gin.H{"title": "A", "description": "a"}, nil)
	_, b := s.do(http.MethodPost, "/feature-requests", gin.H{"title": "B", "description": "b"}, nil)
	s.do(http.MethodPost, "/feature-requests/"+b["id"].(string)+"/vote", nil, nil)

	w, _ := s.do(http.MethodPatch, "/admin/feature-requests/"+a["id"].(string), gin.H{"isHidden": true}, admin)
	require.Equal(t, http.StatusOK, w.Code)

	public := s.list("/feature-requests", nil)
	require.Len(t, public, 1)
	assert.Equal(t, "B", public[0]["title"])

	all := s.list("/admin/feature-requests", admin)
	require.Len(t, all, 2)
	assert.Equal(t, "B", all[0]["title"], "more votes first")

	w, stats := s.do(http.MethodGet, "/admin/feature-requests/stats", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), stats["total"])
	assert.Equal(t, float64(2), stats["pending"])
	assert.Equal(t, float64(1), stats["hidden"])
}

func TestRouter_AdminGate(t *testing.T) {
	s := newTestServer(t, nil)

	w, _ := s.do(http.MethodGet, "/admin/feature-requests", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodGet, "/admin/feature-requests", nil, map[string]string{"Authorization": "Bearer forged"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body := s.do(http.MethodPost, "/auth/admin", gin.H{"username": "admin", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid credentials", body["error"])

	admin := s.login()
	w, _ = s.do(http.MethodGet, "/admin/feature-requests", nil, admin)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodPost, "/auth/admin/logout", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)

	w, body = s.do(http.MethodGet, "/admin/feature-requests", nil, admin)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "token must stop working once its session is revoked")
	assert.Equal(t, "session expired or revoked", body["error"])
}

func TestRouter_IdempotentCreate(t *testing.T) {
	s := newTestServer(t, nil)
	headers := map[string]string{"Idempotency-Key": "form-submit-1"}
	payload := gin.H{"title": "Retry me", "description": "network flake"}

	w1, first := s.do(http.MethodPost, "/feature-requests", payload, headers)
	w2, second := s.do(http.MethodPost, "/feature-requests", payload, headers)

	assert.Equal(t, http.StatusCreated, w1.Code)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, first["id"], second["id"])
	assert.Len(t, s.list("/feature-requests", nil), 1)
}

func TestRouter_RateLimitedWrites(t *testing.T) {
	s := newTestServer(t, ratelimiter.NewRateLimiter(ratelimiter.Config{RPS: 0.001, Burst: 1}))

	w, _ := s.do(http.MethodPost, "/feature-requests", gin.H{"title": "t", "description": "d"}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	w, _ = s.do(http.MethodPost, "/feature-requests", gin.H{"title": "t", "description": "d"}, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// reads are not limited
	s.list("/feature-requests", nil)
}

func TestRouter_RateLimitIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	s := newTestServer(t, ratelimiter.NewRateLimiter(ratelimiter.Config{RPS: 0.001, Burst: 1}))

	var codes []int
	for i := range 5 {
		w, _ := s.do(http.MethodPost, "/feature-requests", gin.H{"title": "t", "description": "d"},
			map[string]string{"X-Forwarded-For": fmt.Sprintf("203.0.113.%d", i+1)})
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{201, 429, 429, 429, 429}, codes)
}

func TestRouter_RateLimitUsesForwardedForFromTrustedProxy(t *testing.T) {
	// httptest.NewRequest の RemoteAddr は 192.0.2.1
	s := newTestServer(t, ratelimiter.NewRateLimiter(ratelimiter.Config{RPS: 0.001, Burst: 1}), "192.0.2.0/24")

	for i := range 3 {
		w, _ := s.do(http.MethodPost, "/feature-requests", gin.H{"title": "t", "description": "d"},
			map[string]string{"X-Forwarded-For": fmt.Sprintf("203.0.113.%d", i+1)})
		assert.Equal(t, http.StatusCreated, w.Code)
	}
}

func TestRouter_PlatformEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	w, _ := s.do(http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, body := s.do(http.MethodGet, "/readyz", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", body["status"])

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}
