package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silkmarket/core/internal/adapters/repository"
	"github.com/silkmarket/core/internal/application/services"
	"github.com/silkmarket/core/internal/infrastructure/config"
	"github.com/silkmarket/core/internal/infrastructure/logger"
	"github.com/silkmarket/core/internal/infrastructure/persistence"
)

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Name: "SilkMarket", Version: "test"},
		Server:  config.ServerConfig{Host: "127.0.0.1", Port: 5000},
		Storage: config.StorageConfig{Backend: config.StorageFile},
		Security: config.SecurityConfig{
			CORSAllowedOrigins: "http://localhost:5173",
			RateLimitRequests:  3,
			RateLimitWindow:    time.Minute,
		},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	log := logger.NewNop()
	reg := prometheus.NewRegistry()

	sink := persistence.Instrument(
		persistence.NewFileSink(filepath.Join(t.TempDir(), "silk_market.json")),
		persistence.NewMetrics(reg),
	)
	store, err := repository.Open(context.Background(), sink, log, true)
	require.NoError(t, err)

	return New(cfg, Dependencies{
		Store:    store,
		Verifier: services.NewPlaintextVerifier("admin123"),
		Registry: reg,
	}, log)
}

func get(s *Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := get(s, "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "Silk Market API is running", body["message"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = get(s, "/api/health/detailed")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"cocoon_rates":6`)
}

func TestSeededDataIsServed(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := get(s, "/api/silk/locations")
	require.Equal(t, http.StatusOK, rec.Code)

	var latest []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &latest))
	require.Len(t, latest, 3)
	assert.Equal(t, "Karnataka", latest[0]["location"])
	assert.Equal(t, "2024-01-16", latest[0]["date"])
}

func TestMetricsEndpoint(t *testing.T) {
	cfg := testConfig()
	cfg.Security.RateLimitRequests = 0
	s := newTestServer(t, cfg)

	get(s, "/api/cocoon")
	get(s, "/api/cocoon/999")

	rec := get(s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "silkmarket_cocoon_rates 6")
	assert.Contains(t, body, `http_requests_total{method="GET",path="/api/cocoon/:id",status="404"} 1`)
	assert.Contains(t, body, `silkmarket_snapshot_saves_total{result="ok",sink="file"} 12`)
}

func TestMetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics.Enabled = false
	s := newTestServer(t, cfg)

	assert.Equal(t, http.StatusNotFound, get(s, "/metrics").Code)
}

func TestRateLimiter(t *testing.T) {
	s := newTestServer(t, testConfig())

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		codes = append(codes, get(s, "/api/silk").Code)
	}
	assert.Equal(t, []int{200, 200, 200, 429, 429}, codes)

	assert.Equal(t, http.StatusOK, get(s, "/api/health").Code)
}

func TestAdminWriteThroughServer(t *testing.T) {
	cfg := testConfig()
	cfg.Security.RateLimitRequests = 0
	s := newTestServer(t, cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/silk",
		strings.NewReader(`{"location":"Kolar","price":3700,"date":"2024-02-01"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer admin123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"success":true,"message":"Silk price added successfully","id":7}`, rec.Body.String())
}
