package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/staggergrid/internal/engine"
	"github.com/piwi3910/staggergrid/internal/model"
)

func newTestServer(w io.Writer, level log.Level) *httptest.Server {
	logger := log.NewWithOptions(w, log.Options{Level: level})
	return httptest.NewServer(New(logger))
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(io.Discard, log.InfoLevel)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestPack(t *testing.T) {
	ts := newTestServer(io.Discard, log.InfoLevel)
	defer ts.Close()

	req := PackRequest{
		Items: []model.Item{
			{Label: "A", Width: 100, Height: 20, Quantity: 1},
			{Label: "B", Width: 40, Height: 10, Quantity: 2},
		},
		Container: model.Container{Width: 100, Height: 500},
	}
	body, err := json.Marshal(req)
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/api/pack", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var result model.LayoutResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	want := engine.Arrange(model.ExpandItems(req.Items), req.Container, model.DefaultSettings(), nil)
	assert.Equal(t, want, result)
	assert.Len(t, result.Placements, 3)
	assert.Equal(t, 30, result.Height)
}

func TestPack_UsesRequestSettings(t *testing.T) {
	ts := newTestServer(io.Discard, log.InfoLevel)
	defer ts.Close()

	body := `{"items":[{"width":10,"height":7,"quantity":1}],"container":{"width":100,"height":100},"settings":{"unit_size":5,"orientation":"vertical"}}`
	resp, err := http.Post(ts.URL+"/api/pack", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result model.LayoutResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 5, result.Settings.UnitSize)
	assert.Equal(t, 10, result.Height)
}

func TestPack_BadRequests(t *testing.T) {
	ts := newTestServer(io.Discard, log.InfoLevel)
	defer ts.Close()

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"items":`},
		{"unknown field", `{"items":[],"kerf":3}`},
		{"bad orientation", `{"settings":{"orientation":"diagonal"}}`},
		{"negative size", `{"items":[{"width":-1,"height":5}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/pack", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestPack_MethodNotAllowed(t *testing.T) {
	ts := newTestServer(io.Discard, log.InfoLevel)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/pack")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestCompare(t *testing.T) {
	ts := newTestServer(io.Discard, log.InfoLevel)
	defer ts.Close()

	body := `{"items":[{"width":50,"height":20,"quantity":3}],"container":{"width":100,"height":100},"settings":{"unit_size":4,"group_count":2}}`
	resp, err := http.Post(ts.URL+"/api/compare", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var results []engine.ComparisonResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&results))
	require.Len(t, results, 5)
	assert.Equal(t, "Current Settings", results[0].Scenario.Name)
	assert.Len(t, results[0].Result.Placements, 3)
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	ts := newTestServer(&buf, log.DebugLevel)

	body := `{"items":[{"width":10,"height":10,"quantity":1}],"container":{"width":100,"height":100}}`
	resp, err := http.Post(ts.URL+"/api/pack", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	// Close waits for the handler, so the buffer is complete afterwards.
	ts.Close()

	out := buf.String()
	assert.Contains(t, out, "request")
	assert.Contains(t, out, "/api/pack")
	assert.Contains(t, out, "placed")
}
