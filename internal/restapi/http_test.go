package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"matatumonitor/internal/app"
	"matatumonitor/internal/appconf"
	"matatumonitor/internal/logging"
	"matatumonitor/internal/models"
	"matatumonitor/internal/session"
)

var testNow = time.Date(2025, 3, 14, 17, 30, 0, 0, time.UTC)

type eventRecorder struct {
	mu     sync.Mutex
	events []session.Event
}

func (e *eventRecorder) Notify(ctx context.Context, event session.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
}

func (e *eventRecorder) Events() []session.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]session.Event(nil), e.events...)
}

// createTestApi creates a RestAPI over a freshly seeded session. Events the
// session emits are captured by the returned recorder.
func createTestApi(t *testing.T) (*RestAPI, *eventRecorder) {
	t.Helper()
	return createTestApiWithConfig(t, appconf.Config{
		Env:       appconf.EnvFlagToEnvironment("test"),
		ApiKeys:   []string{"TEST"},
		RateLimit: 100,
	})
}

func createTestApiWithConfig(t *testing.T, cfg appconf.Config) (*RestAPI, *eventRecorder) {
	t.Helper()
	logger := logging.NewStructuredLogger(io.Discard, slog.LevelError)
	recorder := &eventRecorder{}

	sess, err := session.NewSample(session.Options{
		Logger:   logger,
		Notifier: recorder,
		Clock:    func() time.Time { return testNow },
	})
	require.NoError(t, err)

	api := NewRestAPI(&app.Application{
		Config:  cfg,
		Logger:  logger,
		Session: sess,
	})
	t.Cleanup(api.Stop)
	return api, recorder
}

// serveApiAndRetrieveEndpoint sends one request through the full handler
// stack and decodes the envelope.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, method, endpoint string, body interface{}) (*http.Response, models.ResponseModel) {
	t.Helper()
	resp, raw := serveApiAndRetrieveRaw(t, api, method, endpoint, body)

	var response models.ResponseModel
	require.NoError(t, json.Unmarshal(raw, &response), "body: %s", raw)
	return resp, response
}

func serveApiAndRetrieveRaw(t *testing.T, api *RestAPI, method, endpoint string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	server := httptest.NewServer(api.Handler())
	defer server.Close()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		encoded, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, server.URL+endpoint, reader)
	require.NoError(t, err)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

// fieldErrors decodes a 400 validation body.
func fieldErrors(t *testing.T, raw []byte) map[string][]string {
	t.Helper()
	var body struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}
	require.NoError(t, json.Unmarshal(raw, &body), "body: %s", raw)
	return body.FieldErrors
}

func dataMap(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object, got %T", model.Data)
	return data
}

func entryOf(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()
	entry, ok := dataMap(t, model)["entry"].(map[string]interface{})
	require.True(t, ok, "entry should be an object")
	return entry
}

func listOf(t *testing.T, model models.ResponseModel) []interface{} {
	t.Helper()
	list, ok := dataMap(t, model)["list"].([]interface{})
	require.True(t, ok, "list should be an array")
	return list
}
