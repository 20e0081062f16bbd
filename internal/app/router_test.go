package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/restkit/internal/observability"
	"github.com/odyssey-erp/restkit/internal/platform/db/dbtest"
	"github.com/odyssey-erp/restkit/internal/resource"
)

func testConfig() *Config {
	return &Config{
		AppEnv:             "test",
		DBEngine:           "sqlite",
		DefaultPageSize:    25,
		RateLimitPerMinute: 600,
		CORSAllowedOrigins: []string{"https://app.example"},
	}
}

func newTestRouter(t *testing.T, cfg *Config) (http.Handler, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetrics()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	conn := dbtest.OpenSQLite(t)
	require.NoError(t, metrics.RegisterDB(conn))
	router, err := Wire(cfg, logger, conn, metrics)
	require.NoError(t, err)
	return router, metrics
}

func serve(router http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestResourcesAreRegistered(t *testing.T) {
	names := resource.NewRegistry(Resources()...).Names()
	require.Equal(t, []string{"accounts", "addresses", "agencies", "customers"}, names)
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	rr := serve(router, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestHealthzReportsUnavailableStore(t *testing.T) {
	router := NewRouter(RouterParams{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: testConfig(),
		Ready:  func(*http.Request) error { return io.ErrClosedPipe },
	})

	rr := serve(router, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestRouterServesResourcesWithMiddleware(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	rr := serve(router, http.MethodPost, "/customers", `{"customer": {"first_name": "Ada"}}`, nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = serve(router, http.MethodGet, "/customers?filter[first_name]=Ad", "", map[string]string{"Origin": "https://app.example"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1", rr.Header().Get(resource.HeaderTotal))
	assert.Equal(t, "https://app.example", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Expose-Headers"), resource.HeaderTotal)
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rr.Header().Get("X-Ratelimit-Limit"))
}

func TestRouterRecordsMetrics(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	serve(router, http.MethodGet, "/agencies", "", nil)
	rr := serve(router, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `restkit_http_requests_total{code="200",method="GET",route="/{resource}`)
	assert.Contains(t, body, `restkit_list_total_records_count{resource="agencies"} 1`)
	assert.Contains(t, body, `go_sql_open_connections{db_name="restkit"}`)
}

func TestRouterRateLimits(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitPerMinute = 2
	router, _ := newTestRouter(t, cfg)

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/healthz", "", nil).Code)
	}
	require.Equal(t, http.StatusTooManyRequests, serve(router, http.MethodGet, "/healthz", "", nil).Code)
}

func TestWireRejectsUnknownEngine(t *testing.T) {
	cfg := testConfig()
	cfg.DBEngine = "oracle"
	_, err := Wire(cfg, slog.Default(), nil, nil)
	require.Error(t, err)
}
