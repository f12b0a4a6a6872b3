package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factsmission/tlds/pkg/cache"
	"github.com/factsmission/tlds/pkg/observability"
	"github.com/factsmission/tlds/pkg/pipeline"
)

const aliceJSON = `{"triples":[
  {"subject":{"type":"uri","value":"http://example.org/alice"},
   "predicate":"http://xmlns.com/foaf/0.1/name",
   "object":{"type":"literal","value":"Alice <A>"}},
  {"subject":{"type":"uri","value":"http://example.org/alice"},
   "predicate":"http://xmlns.com/foaf/0.1/knows",
   "object":{"type":"bnode","value":"b0"}}
]}`

const aliceYAML = `triples:
  - subject: {type: uri, value: "http://example.org/alice"}
    predicate: "http://xmlns.com/foaf/0.1/name"
    object: {type: literal, value: "Alice"}
`

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(c, nil, nil, logger)
	t.Cleanup(func() { _ = runner.Close() })

	ts := httptest.NewServer(New(runner, logger, opts).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, contentType, accept, body string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func decodeError(t *testing.T, body string) errorDetail {
	t.Helper()
	var eb errorBody
	require.NoError(t, json.Unmarshal([]byte(body), &eb))
	return eb.Error
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, Options{})
	resp, body := do(t, http.MethodGet, ts.URL+"/v1/health", "", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"status":"ok"`)
}

func TestRender_DefaultsToHTML(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, body := do(t, http.MethodPost, ts.URL+"/v1/render", "application/json", "", aliceJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "miss", resp.Header.Get(HeaderCache))
	assert.Len(t, resp.Header.Get(HeaderGraphHash), 64)
	assert.Contains(t, body, "<tbody about='http://example.org/alice'>")
	assert.Contains(t, body, "Alice &lt;A&gt;")
	assert.Contains(t, body, "resource='_:0'")

	again, body2 := do(t, http.MethodPost, ts.URL+"/v1/render", "application/json", "text/html", aliceJSON)
	assert.Equal(t, "hit", again.Header.Get(HeaderCache))
	assert.Equal(t, body, body2)
}

func TestRender_Raw(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, body := do(t, http.MethodPost, ts.URL+"/v1/render?raw=true", "application/json", "text/html", aliceJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Contains(t, body, "Alice <A>")

	resp, body = do(t, http.MethodPost, ts.URL+"/v1/render?raw=maybe", "application/json", "text/html", aliceJSON)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_INPUT", decodeError(t, body).Code)
}

func TestRender_Negotiation(t *testing.T) {
	ts := newTestServer(t, Options{})

	tests := []struct {
		name, accept, query, wantType string
		wantStatus                    int
	}{
		{"dot by accept", "text/vnd.graphviz", "", "text/vnd.graphviz; charset=utf-8", http.StatusOK},
		{"quality order", "text/html;q=0.5, text/vnd.graphviz", "", "text/vnd.graphviz; charset=utf-8", http.StatusOK},
		{"wildcard", "*/*", "", "text/html; charset=utf-8", http.StatusOK},
		{"query overrides accept", "text/html", "?format=text/vnd.graphviz", "text/vnd.graphviz; charset=utf-8", http.StatusOK},
		{"unsupported accept", "application/rdf+xml", "", "application/json", http.StatusNotAcceptable},
		{"unsupported query", "", "?format=application/rdf+xml", "application/json", http.StatusNotAcceptable},
		{"malformed query", "", "?format=html", "application/json", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPost, ts.URL+"/v1/render"+tt.query, "application/json", tt.accept, aliceJSON)
			assert.Equal(t, tt.wantStatus, resp.StatusCode, body)
			assert.Equal(t, tt.wantType, resp.Header.Get("Content-Type"))
		})
	}
}

func TestRender_NotAcceptableListsFormats(t *testing.T) {
	ts := newTestServer(t, Options{})
	_, body := do(t, http.MethodPost, ts.URL+"/v1/render", "application/json", "application/rdf+xml", aliceJSON)

	detail := decodeError(t, body)
	assert.Equal(t, "UNSUPPORTED_FORMAT", detail.Code)
	assert.Equal(t, []string{"image/svg+xml", "text/html", "text/vnd.graphviz"}, detail.Supported)
}

func TestRender_RequestBodies(t *testing.T) {
	ts := newTestServer(t, Options{MaxBodyBytes: 1024})

	tests := []struct {
		name, contentType, body string
		wantStatus              int
	}{
		{"yaml", "application/yaml", aliceYAML, http.StatusOK},
		{"yaml with params", "text/yaml; charset=utf-8", aliceYAML, http.StatusOK},
		{"no content type", "", aliceJSON, http.StatusOK},
		{"malformed json", "application/json", `{"triples": [`, http.StatusBadRequest},
		{"literal subject", "application/json",
			`{"triples":[{"subject":{"type":"literal","value":"x"},"predicate":"ex:p","object":{"type":"uri","value":"ex:o"}}]}`,
			http.StatusBadRequest},
		{"unknown content type", "text/turtle", "<a> <b> <c> .", http.StatusUnsupportedMediaType},
		{"too large", "application/json", `{"triples":[` + strings.Repeat(" ", 2048) + `]}`, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPost, ts.URL+"/v1/render", tt.contentType, "text/html", tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode, body)
		})
	}
}

func TestGraphByHash(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, _ := do(t, http.MethodPost, ts.URL+"/v1/render", "application/json", "text/html", aliceJSON)
	hash := resp.Header.Get(HeaderGraphHash)
	require.NotEmpty(t, hash)

	resp, body := do(t, http.MethodGet, ts.URL+"/v1/graphs/"+hash, "", "text/vnd.graphviz", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, hash, resp.Header.Get(HeaderGraphHash))
	assert.True(t, strings.HasPrefix(body, "digraph"), body)

	resp, body = do(t, http.MethodGet, ts.URL+"/v1/graphs/"+strings.Repeat("0", 64), "", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, body).Code)
}

func TestRenderers(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, body := do(t, http.MethodGet, ts.URL+"/v1/renderers", "", "text/html", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Contains(t, body, "<tbody about='"+ts.URL+"/v1/renderers'>")
	for _, f := range []string{"text/html", "text/vnd.graphviz", "image/svg+xml"} {
		assert.Contains(t, body, ">"+f+"</span>")
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	hooks := observability.NewPrometheusHooks(reg)
	observability.SetHTTPHooks(hooks)
	observability.SetRenderHooks(hooks)
	t.Cleanup(observability.Reset)

	ts := newTestServer(t, Options{Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{})})
	do(t, http.MethodGet, ts.URL+"/v1/graphs/abc", "", "", "")
	do(t, http.MethodPost, ts.URL+"/v1/render", "application/json", "", aliceJSON)

	resp, body := do(t, http.MethodGet, ts.URL+"/metrics", "", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `route="/v1/graphs/{hash}"`)
	assert.Contains(t, body, "tlds_renders_total")
	assert.NotContains(t, body, "/v1/graphs/abc")
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	logger := log.New(io.Discard)
	s := New(pipeline.NewRunner(nil, nil, nil, logger), logger, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRequestID(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, _ := do(t, http.MethodGet, ts.URL+"/v1/health", "", "", "")
	_, err := uuid.Parse(resp.Header.Get(HeaderRequestID))
	assert.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/v1/health", nil)
	require.NoError(t, err)
	req.Header.Set(HeaderRequestID, "trace-42")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "trace-42", resp.Header.Get(HeaderRequestID))
}

func TestDefaultFormat(t *testing.T) {
	ts := newTestServer(t, Options{DefaultFormat: "text/vnd.graphviz"})

	resp, body := do(t, http.MethodPost, ts.URL+"/v1/render", "application/json", "", aliceJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "text/vnd.graphviz; charset=utf-8", resp.Header.Get("Content-Type"))

	resp, _ = do(t, http.MethodPost, ts.URL+"/v1/render", "application/json", "text/html", aliceJSON)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
}
