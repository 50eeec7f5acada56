package server_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsviz/budgetflow/internal/assembler"
	"github.com/rsviz/budgetflow/internal/server"
	"github.com/rsviz/budgetflow/internal/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := assembler.New(testutil.SampleDataset(), assembler.WithClock(testutil.FixedClock()))
	srv := server.New(":0", svc, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestFlowGraphEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var env struct {
		Metadata struct {
			ViewMode   string `json:"viewMode"`
			FiscalYear int    `json:"fiscalYear"`
		} `json:"metadata"`
		Graph struct {
			Nodes []json.RawMessage `json:"nodes"`
			Links []json.RawMessage `json:"links"`
		} `json:"graph"`
	}
	resp := getJSON(t, ts.URL+"/api/v1/flowgraph", &env)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "global", env.Metadata.ViewMode)
	assert.Equal(t, 2024, env.Metadata.FiscalYear)
	assert.NotEmpty(t, env.Graph.Nodes)
	assert.NotEmpty(t, env.Graph.Links)
}

func TestFlowGraphFocusedModes(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		query    string
		wantMode string
	}{
		{"targetMinistryName=環境省", "ministry"},
		{"targetProjectName=道路維持管理", "project"},
		{"targetRecipientName=富士通株式会社", "recipient"},
	}
	for _, tt := range tests {
		t.Run(tt.wantMode, func(t *testing.T) {
			var env struct {
				Metadata struct {
					ViewMode string `json:"viewMode"`
				} `json:"metadata"`
			}
			resp := getJSON(t, ts.URL+"/api/v1/flowgraph?"+tt.query, &env)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.wantMode, env.Metadata.ViewMode)
		})
	}
}

func TestFlowGraphUnknownTarget(t *testing.T) {
	ts := newTestServer(t)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	resp := getJSON(t, ts.URL+"/api/v1/flowgraph?targetMinistryName=未知の省庁", &body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not_found", body.Error.Code)
}

func TestFlowGraphBadParameters(t *testing.T) {
	ts := newTestServer(t)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	resp := getJSON(t, ts.URL+"/api/v1/flowgraph?ministryLimit=abc", &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_parameter", body.Error.Code)

	resp = getJSON(t, ts.URL+"/api/v1/flowgraph?targetMinistryName=a&targetProjectName=b", &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "ambiguous_target", body.Error.Code)
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]string
	resp := getJSON(t, ts.URL+"/healthz", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	// Generate one request so the counters exist.
	resp := getJSON(t, ts.URL+"/api/v1/flowgraph", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "budgetflow_http_requests_total")
	assert.Contains(t, string(raw), "budgetflow_cache_misses_total")
}

func TestTraceHeaderPropagation(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("X-Trace-ID", "trace-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "trace-123", resp.Header.Get("X-Trace-ID"))

	// Absent header: the server assigns one.
	resp2, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.NotEmpty(t, resp2.Header.Get("X-Trace-ID"))
	assert.False(t, strings.EqualFold(resp2.Header.Get("X-Trace-ID"), "trace-123"))
}
