package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/office-mcp/internal/infrastructure/config"
	"github.com/GriffinCanCode/office-mcp/internal/infrastructure/logging"
	"github.com/GriffinCanCode/office-mcp/internal/integration/applescript"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Office.TempDir = filepath.Join(t.TempDir(), "work")
	cfg.Office.TemplatesDir = t.TempDir()
	cfg.Office.EnableAppleScript = false
	cfg.Server.Transport = config.TransportHTTP
	cfg.Server.Port = "0"
	cfg.RateLimit.Enabled = false
	return cfg
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(testConfig(t),
		WithLogger(logging.NewNop()),
		WithBridge(applescript.New(nil, false)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func request(t *testing.T, s *Server, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		data, err := sonic.Marshal(body)
		require.NoError(t, err)
		buf.Write(data)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestNewServerRegistersAllServices(t *testing.T) {
	s := newTestServer(t)

	services := s.Registry().List(nil)
	ids := make([]string, 0, len(services))
	for _, svc := range services {
		ids = append(ids, svc.ID)
	}
	assert.ElementsMatch(t, []string{"powerpoint", "word", "excel", "office"}, ids)
	assert.Len(t, s.Registry().Tools(), 31)
}

func TestNewServerTwice(t *testing.T) {
	newTestServer(t)
	newTestServer(t)
}

func TestExecuteThroughHTTP(t *testing.T) {
	s := newTestServer(t)

	w, body := request(t, s, http.MethodPost, "/services/execute", map[string]interface{}{
		"tool_id": "excel.create_workbook",
		"params":  map[string]interface{}{"title": "Budget"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, body["success"], "body: %v", body)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Budget", data["title"])
	assert.FileExists(t, data["file_path"].(string))

	w, body = request(t, s, http.MethodGet, "/resources?uri=office365://status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	status := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), status["active_workbooks"])

	w, _ = request(t, s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `office_tool_executions_total{service="excel",status="success",tool="create_workbook"} 1`)
	assert.Contains(t, w.Body.String(), `office_active_objects{kind="workbook"} 1`)
}

func TestExecuteValidationFailure(t *testing.T) {
	s := newTestServer(t)

	w, body := request(t, s, http.MethodPost, "/services/execute", map[string]interface{}{
		"tool_id": "word.add_heading",
		"params":  map[string]interface{}{"document_id": "missing", "text": "Intro"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestRunHTTPStopsOnCancel(t *testing.T) {
	s := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
