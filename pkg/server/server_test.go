package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wayangkg "github.com/adrianreza/wayangkg"
	"github.com/adrianreza/wayangkg/pkg/config"
	"github.com/adrianreza/wayangkg/pkg/types"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	kg, err := wayangkg.NewClient(nil, nil, nil)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Server.Host = "localhost"
	cfg.Server.Port = 0

	s := New(cfg, kg)
	s.Setup()
	return s
}

func do(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

const documentBody = `{
	"id": "d1",
	"dataset": "wayang",
	"sentences": [{
		"text": "Arjuna melawan Karna",
		"mentions": [
			{"text": "Arjuna", "type": "PERSON", "start": 0, "end": 6},
			{"text": "Karna", "type": "PERSON", "start": 15, "end": 20}
		]
	}]
}`

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := do(s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)
}

func TestAddDocumentAndQueryGraph(t *testing.T) {
	s := newTestServer(t)

	w := do(s, http.MethodPost, "/api/v1/documents", documentBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(s, http.MethodGet, "/api/v1/graph", "")
	require.Equal(t, http.StatusOK, w.Code)

	var snap types.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Len(t, snap.Nodes, 2)
	assert.Len(t, snap.Edges, 2)

	w = do(s, http.MethodGet, "/api/v1/graph/statistics", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats types.Statistics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.NodeCount)
}

func TestAddDocumentValidation(t *testing.T) {
	s := newTestServer(t)

	w := do(s, http.MethodPost, "/api/v1/documents", `{"dataset": "x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(s, http.MethodPost, "/api/v1/documents", "tidak valid")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Structurally broken document: inverted span.
	inverted := `{
		"id": "d2",
		"sentences": [{
			"text": "Bima",
			"mentions": [{"text": "Bima", "type": "PERSON", "start": 4, "end": 1}]
		}]
	}`
	w = do(s, http.MethodPost, "/api/v1/documents", inverted)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAddCorpus(t *testing.T) {
	s := newTestServer(t)

	body := `{"documents": [` + documentBody + `]}`
	w := do(s, http.MethodPost, "/api/v1/corpus", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"processed":1`)

	w = do(s, http.MethodPost, "/api/v1/corpus", `{"documents": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEntityEndpoints(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, do(s, http.MethodPost, "/api/v1/documents", documentBody).Code)

	w := do(s, http.MethodGet, "/api/v1/entities/Arjuna", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Arjuna"`)

	w = do(s, http.MethodGet, "/api/v1/entities/Togog", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(s, http.MethodGet, "/api/v1/entities/Arjuna/subgraph?depth=1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var snap types.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Len(t, snap.Nodes, 2)

	w = do(s, http.MethodGet, "/api/v1/entities/Arjuna/subgraph?depth=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(s, http.MethodGet, "/api/v1/entities/Arjuna/subgraph?depth=0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPathsEndpoint(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, do(s, http.MethodPost, "/api/v1/documents", documentBody).Code)

	w := do(s, http.MethodGet, "/api/v1/entities/Arjuna/paths?target=Karna", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Paths [][]string `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, [][]string{{"Arjuna", "Karna"}}, resp.Paths)

	w = do(s, http.MethodGet, "/api/v1/entities/Arjuna/paths", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(s, http.MethodGet, "/api/v1/entities/Arjuna/paths?target=Karna&maxLength=x", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(s, http.MethodGet, "/api/v1/entities/Arjuna/paths?target=Togog", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, do(s, http.MethodPost, "/api/v1/documents", documentBody).Code)

	w := do(s, http.MethodGet, "/api/v1/graph/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"documentsProcessed":1`)
}
