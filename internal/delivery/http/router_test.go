package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eventdiscovery/internal/adapters/seed"
	"eventdiscovery/internal/cache"
	"eventdiscovery/internal/delivery/http/controllers"
	"eventdiscovery/internal/delivery/http/helpers"
	"eventdiscovery/internal/domain"
	"eventdiscovery/internal/metrics"
	"eventdiscovery/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	events, err := seed.DefaultCatalog()
	require.NoError(t, err)
	m := metrics.New()
	svc := services.NewEventService(seed.NewSource(events, 0), cache.New[[]domain.Event](), m, logger, time.Second)
	router := NewRouter(controllers.NewEventController(logger, svc), logger, RouterOptions{
		AllowedOrigins: []string{"http://localhost:5173"},
		AdminToken:     "s3cret",
		Metrics:        m.Handler(),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRouter_Routes(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		headers    map[string]string
		wantStatus int
		wantBody   string
	}{
		{name: "list", method: http.MethodGet, path: "/events?q=React", wantStatus: http.StatusOK, wantBody: "React Conference 2024"},
		{name: "list invalid range", method: http.MethodGet, path: "/events?dateRange=later", wantStatus: http.StatusBadRequest, wantBody: "bad_request"},
		{name: "search", method: http.MethodPost, path: "/events/search", body: `{"eventType":"Festival"}`, wantStatus: http.StatusOK, wantBody: "Summer Music Festival"},
		{name: "detail", method: http.MethodGet, path: "/events/3", wantStatus: http.StatusOK, wantBody: "AI \\u0026 Machine Learning Meetup"},
		{name: "detail missing", method: http.MethodGet, path: "/events/999", wantStatus: http.StatusNotFound, wantBody: "not_found"},
		{name: "detail malformed id", method: http.MethodGet, path: "/events/bad%20id", wantStatus: http.StatusNotFound, wantBody: "not_found"},
		{name: "clear cache unauthorized", method: http.MethodDelete, path: "/cache", wantStatus: http.StatusUnauthorized, wantBody: "unauthorized"},
		{name: "clear cache", method: http.MethodDelete, path: "/cache", headers: map[string]string{"Authorization": "Bearer s3cret"}, wantStatus: http.StatusNoContent},
		{name: "health", method: http.MethodGet, path: "/healthz", wantStatus: http.StatusOK, wantBody: `"status":"ok"`},
		{name: "wrong method", method: http.MethodPut, path: "/events", wantStatus: http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			resp := do(t, tt.method, srv.URL+tt.path, body, tt.headers)
			require.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
			b, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Contains(t, string(b), tt.wantBody)
		})
	}
}

func TestRouter_ListIsSortedAndPaginated(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/events?page=1&page_size=2", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data controllers.ListEventsResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Len(t, envelope.Data.Events, 2)
	assert.Equal(t, "2", envelope.Data.Events[0].ID)
	assert.Equal(t, "3", envelope.Data.Events[1].ID)
	assert.Equal(t, helpers.PaginationMeta{Page: 1, PageSize: 2, Total: 5, TotalPages: 3}, envelope.Data.Pagination)
}

func TestRouter_MetricsCountCacheLookups(t *testing.T) {
	srv := newTestServer(t)
	do(t, http.MethodGet, srv.URL+"/events?q=design", nil, nil)
	do(t, http.MethodGet, srv.URL+"/events?q=design", nil, nil)

	resp := do(t, http.MethodGet, srv.URL+"/metrics", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), `eventdiscovery_cache_lookups_total{result="hit"} 1`)
	assert.Contains(t, string(b), `eventdiscovery_cache_lookups_total{result="miss"} 1`)
}

func TestRouter_CORSPreflight(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodOptions, srv.URL+"/events", nil, map[string]string{
		"Origin":                        "http://localhost:5173",
		"Access-Control-Request-Method": http.MethodGet,
	})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRouter_RecoversFromPanics(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(controllers.NewEventController(logger, panickingService{}), logger, RouterOptions{})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/events", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

type panickingService struct{ domain.EventService }

func (panickingService) FetchEvents(_ context.Context, _ domain.Filters) ([]domain.Event, error) {
	panic("boom")
}
