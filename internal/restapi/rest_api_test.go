package restapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matatumonitor/internal/app"
	"matatumonitor/internal/appconf"
	"matatumonitor/internal/logging"
	"matatumonitor/internal/metrics"
	"matatumonitor/internal/models"
	"matatumonitor/internal/notify"
	"matatumonitor/internal/session"
)

func TestInvalidAPIKey(t *testing.T) {
	api, _ := createTestApi(t)

	for _, endpoint := range []string{"/api/reports", "/api/reports?key=INVALID", "/api/stats?key=test"} {
		resp, model := serveApiAndRetrieveEndpoint(t, api, http.MethodGet, endpoint, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, endpoint)
		assert.Equal(t, http.StatusUnauthorized, model.Code, endpoint)
		assert.Equal(t, "permission denied", model.Text, endpoint)
	}
}

func TestNoAPIKeysConfiguredAllowsAnonymousAccess(t *testing.T) {
	api, _ := createTestApiWithConfig(t, appconf.Config{Env: appconf.Test})

	resp, _ := serveApiAndRetrieveEndpoint(t, api, http.MethodGet, "/api/reports", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnknownPathAndMethod(t *testing.T) {
	api, _ := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, http.MethodGet, "/api/where/agency/1?key=TEST", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "resource not found", model.Text)

	resp, model = serveApiAndRetrieveEndpoint(t, api, http.MethodDelete, "/api/reports/1?key=TEST", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, http.StatusMethodNotAllowed, model.Code)
}

func TestHandlerSetsSecurityHeaders(t *testing.T) {
	api, _ := createTestApi(t)

	resp, _ := serveApiAndRetrieveEndpoint(t, api, http.MethodGet, "/api/reports?key=TEST", nil)

	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}

func TestHandlerCORS(t *testing.T) {
	api, _ := createTestApiWithConfig(t, appconf.Config{
		ApiKeys:        []string{"TEST"},
		AllowedOrigins: []string{"https://matatu.example"},
	})
	server := httptest.NewServer(api.Handler())
	defer server.Close()

	req, err := http.NewRequest(http.MethodOptions, server.URL+"/api/reports", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://matatu.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://matatu.example", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPost)

	req, err = http.NewRequest(http.MethodGet, server.URL+"/api/reports?key=TEST", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://evil.example")
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()
	assert.Empty(t, resp2.Header.Get("Access-Control-Allow-Origin"))
}

func TestHandlerRateLimit(t *testing.T) {
	api, _ := createTestApiWithConfig(t, appconf.Config{ApiKeys: []string{"TEST"}, RateLimit: 2})
	server := httptest.NewServer(api.Handler())
	defer server.Close()

	var codes []int
	for i := 0; i < 3; i++ {
		resp, err := http.Get(server.URL + "/api/current-time?key=TEST")
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
		_ = resp.Body.Close()
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

// createWiredApi builds the same component graph as the server binary: a
// hub and a metrics collector attached to the session.
func createWiredApi(t *testing.T) *RestAPI {
	t.Helper()
	logger := logging.NewStructuredLogger(io.Discard, slog.LevelError)

	hub := notify.NewHub(logger, nil)
	go hub.Run()
	t.Cleanup(hub.Stop)

	collector := metrics.NewCollector(hub.ClientCount)
	sess, err := session.NewSample(session.Options{
		Logger:   logger,
		Notifier: hub,
		Metrics:  collector,
	})
	require.NoError(t, err)

	api := NewRestAPI(&app.Application{
		Config:  appconf.Config{ApiKeys: []string{"TEST"}, RateLimit: 100},
		Logger:  logger,
		Session: sess,
		Metrics: collector,
		Hub:     hub,
	})
	t.Cleanup(api.Stop)
	return api
}

func TestEventStreamReceivesValidation(t *testing.T) {
	api := createWiredApi(t)
	server := httptest.NewServer(api.Handler())
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/events?key=TEST"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	defer func() { _ = conn.Close() }()
	require.Eventually(t, func() bool { return api.Hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	for i := 0; i < 2; i++ {
		vote, err := http.Post(server.URL+"/api/reports/2/upvote?key=TEST", "application/json", nil)
		require.NoError(t, err)
		_ = vote.Body.Close()
	}

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var event models.EventEntry
	require.NoError(t, json.Unmarshal(raw, &event))
	assert.Equal(t, "report.validated", event.Type)
	assert.Equal(t, "2", event.Report.ID)
	assert.Equal(t, 10, event.Report.Upvotes)
}

func TestEventStreamRequiresAPIKey(t *testing.T) {
	api := createWiredApi(t)
	server := httptest.NewServer(api.Handler())
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/events"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	api := createWiredApi(t)
	server := httptest.NewServer(api.Handler())
	defer server.Close()

	vote, err := http.Post(server.URL+"/api/reports/3/downvote?key=TEST", "application/json", nil)
	require.NoError(t, err)
	_ = vote.Body.Close()

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `matatu_votes_total{vote="down"} 1`)
	assert.Contains(t, string(body), "matatu_active_reports 3")
	assert.Contains(t, string(body), `matatu_http_requests_total{method="POST",status="200"} 1`)
}

func TestDebugPageHiddenInProduction(t *testing.T) {
	dev, _ := createTestApiWithConfig(t, appconf.Config{Env: appconf.Development})
	resp, raw := serveApiAndRetrieveRaw(t, dev, http.MethodGet, "/debug?dataType=stats", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "ActiveReports")

	prod, _ := createTestApiWithConfig(t, appconf.Config{Env: appconf.Production})
	resp, _ = serveApiAndRetrieveRaw(t, prod, http.MethodGet, "/debug", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
