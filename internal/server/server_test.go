package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netsketch/pkg/cache"
	"github.com/matzehuels/netsketch/pkg/graph"
	"github.com/matzehuels/netsketch/pkg/store"
)

// newTestServer builds a server with a real file store in a temp directory
// and no caching, so each request exercises the full parse path.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return New(log.New(io.Discard), cache.NewNullCache(), st)
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, newTestServer(t), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestParseEndpoint(t *testing.T) {
	rec := doRequest(t, newTestServer(t), http.MethodPost, "/v1/parse", "a--(up)--b")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}

	g, err := graph.UnmarshalGraph(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("response is not a graph: %v", err)
	}
	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Errorf("counts = %d/%d, want 2/1", g.NodeCount(), g.EdgeCount())
	}
	e, ok := g.Edge("a", "b")
	if !ok || e.Label != "up" {
		t.Errorf("edge = %+v ok %v, want labeled a--b", e, ok)
	}
}

func TestParseEndpointCachesByContentHash(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	srv := New(log.New(io.Discard), c, nil)

	rec := doRequest(t, srv, http.MethodPost, "/v1/parse", "a--b")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}

	// The result lands in the backend under the parse scope, keyed by the
	// diagram's content hash, where the CLI can reuse it.
	key := cache.Key("parse", cache.Hash([]byte("a--b")))
	data, hit, err := c.Get(context.Background(), key)
	if err != nil || !hit {
		t.Fatalf("cached entry: hit %v err %v, want hit", hit, err)
	}
	if g, err := graph.UnmarshalGraph(data); err != nil || g.NodeCount() != 2 {
		t.Errorf("cached entry is not the parsed graph: %v", err)
	}
}

func TestParseEndpointEmptyBody(t *testing.T) {
	rec := doRequest(t, newTestServer(t), http.MethodPost, "/v1/parse", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestParseEndpointBrokenDiagram(t *testing.T) {
	rec := doRequest(t, newTestServer(t), http.MethodPost, "/v1/parse", "a--")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body)
	}

	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != "EDGE_TOO_FEW_NODES" {
		t.Errorf("code = %s, want EDGE_TOO_FEW_NODES", body.Error.Code)
	}
	if body.Error.Position == nil || body.Error.Position.X != 3 || body.Error.Position.Y != 0 {
		t.Errorf("position = %+v, want (3,0)", body.Error.Position)
	}
	if body.Error.Snippet == "" {
		t.Error("snippet is empty")
	}
}

func TestGraphLifecycle(t *testing.T) {
	srv := newTestServer(t)

	// Save
	rec := doRequest(t, srv, http.MethodPut, "/v1/graphs/prod", "a--b")
	if rec.Code != http.StatusCreated {
		t.Fatalf("save status = %d, want 201: %s", rec.Code, rec.Body)
	}

	// Get
	rec = doRequest(t, srv, http.MethodGet, "/v1/graphs/prod", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200: %s", rec.Code, rec.Body)
	}
	var doc graph.Doc
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode graph: %v", err)
	}
	if len(doc.Nodes) != 2 || len(doc.Edges) != 1 {
		t.Errorf("doc = %d nodes %d edges, want 2/1", len(doc.Nodes), len(doc.Edges))
	}

	// List
	rec = doRequest(t, srv, http.MethodGet, "/v1/graphs", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var listing struct {
		Graphs []store.Info `json:"graphs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if len(listing.Graphs) != 1 || listing.Graphs[0].Name != "prod" {
		t.Errorf("listing = %+v, want one entry named prod", listing.Graphs)
	}

	// Delete
	rec = doRequest(t, srv, http.MethodDelete, "/v1/graphs/prod", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}
	rec = doRequest(t, srv, http.MethodGet, "/v1/graphs/prod", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d, want 404", rec.Code)
	}
}

func TestGraphNotFound(t *testing.T) {
	rec := doRequest(t, newTestServer(t), http.MethodGet, "/v1/graphs/ghost", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != "GRAPH_NOT_FOUND" {
		t.Errorf("code = %s, want GRAPH_NOT_FOUND", body.Error.Code)
	}
}

func TestSaveRejectsBadName(t *testing.T) {
	rec := doRequest(t, newTestServer(t), http.MethodPut, "/v1/graphs/bad%20name", "a-b")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body)
	}
}

func TestSaveBrokenDiagram(t *testing.T) {
	rec := doRequest(t, newTestServer(t), http.MethodPut, "/v1/graphs/broken", "a--\n|")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422: %s", rec.Code, rec.Body)
	}
}

func TestStorelessServerRefusesGraphRoutes(t *testing.T) {
	srv := New(log.New(io.Discard), cache.NewNullCache(), nil)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/v1/graphs"},
		{http.MethodPut, "/v1/graphs/x"},
		{http.MethodGet, "/v1/graphs/x"},
		{http.MethodDelete, "/v1/graphs/x"},
	} {
		rec := doRequest(t, srv, tc.method, tc.path, "diagram")
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s %s = %d, want 503", tc.method, tc.path, rec.Code)
		}
	}

	// Parsing still works without a store.
	rec := doRequest(t, srv, http.MethodPost, "/v1/parse", "a-b")
	if rec.Code != http.StatusOK {
		t.Errorf("parse without store = %d, want 200", rec.Code)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "fixed-id" {
		t.Errorf("X-Request-ID = %q, want fixed-id", got)
	}

	// Without a client-supplied ID the server assigns one.
	rec = doRequest(t, srv, http.MethodGet, "/healthz", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("no request ID assigned")
	}
}
