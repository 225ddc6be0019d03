package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/voltage-analytics/config"
	"github.com/uyouii/voltage-analytics/export"
)

func writeSampleData(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Sample_Data.csv")
	require.NoError(t, os.WriteFile(path, []byte("Timestamp,Values\n"+rows), 0o644))
	return path
}

func newTestServer(dataPath string) *Server {
	return NewServer(&config.Config{
		Server:  config.ServerConfig{Host: "127.0.0.1", Port: 5000},
		Data:    config.DataConfig{Path: dataPath},
		Logging: config.LoggingConfig{Level: "info"},
	})
}

const exampleRows = "01-01-2024 00:03,40\n" +
	"01-01-2024 00:00,30\n" +
	"01-01-2024 00:04,38\n" +
	"01-01-2024 00:02,15\n" +
	"01-01-2024 00:01,25\n"

func TestHandleIndex(t *testing.T) {
	s := newTestServer(writeSampleData(t, exampleRows))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "<td>01-01-2024 00:02</td><td>15</td><td>Low</td>")
	assert.Contains(t, body, "<td>01-01-2024 00:03</td><td>40</td><td>Peak</td>")
	assert.Contains(t, body, "<td>01-01-2024 00:02</td><td>15</td></tr>")
	assert.Contains(t, body, "No accelerating downward slopes found.")
	assert.Equal(t, 2, strings.Count(body, "<svg"))
}

func TestHandleIndex_EmptyData(t *testing.T) {
	s := newTestServer(writeSampleData(t, ""))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No local peaks or lows found.")
	assert.Contains(t, rec.Body.String(), "No readings below 20.")
}

func TestHandleIndex_ParseError(t *testing.T) {
	s := newTestServer(writeSampleData(t, "2024-01-01 00:00,30\n"))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "timestamp parse error")
}

func TestHandleIndex_MissingFile(t *testing.T) {
	s := newTestServer(filepath.Join(t.TempDir(), "missing.csv"))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "could not be analyzed")
}

func TestHandleAnalysis(t *testing.T) {
	s := newTestServer(writeSampleData(t, exampleRows))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analysis", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, 5, resp.Summary.Count)
	assert.Len(t, resp.Extrema, 2)
	require.Len(t, resp.BelowThreshold, 1)
	assert.Equal(t, "15", resp.BelowThreshold[0].Value)
	assert.NotNil(t, resp.Acceleration)
	assert.Empty(t, resp.Acceleration)
}

func TestHandleAnalysis_Error(t *testing.T) {
	s := newTestServer(writeSampleData(t, "01-01-2024 00:00,abc\n"))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analysis", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "malformed data")
}

func TestHandleAnalysis_Export(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tables")
	s := newTestServer(writeSampleData(t, exampleRows))
	s.cfg.Export = config.ExportConfig{Enabled: true, Dir: dir}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analysis", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	content, err := os.ReadFile(filepath.Join(dir, export.BelowThresholdFile))
	require.NoError(t, err)
	assert.Equal(t, "Timestamp,Values\n01-01-2024 00:02,15\n", string(content))
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer("unused.csv")

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestStart_Shutdown(t *testing.T) {
	s := NewServer(&config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Data:   config.DataConfig{Path: "unused.csv"},
	})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRecoverer(t *testing.T) {
	handler := recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
