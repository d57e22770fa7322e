package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/netsketch/pkg/ascii"
	"github.com/matzehuels/netsketch/pkg/cache"
	nserrors "github.com/matzehuels/netsketch/pkg/errors"
	"github.com/matzehuels/netsketch/pkg/graph"
	"github.com/matzehuels/netsketch/pkg/store"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code     nserrors.Code   `json:"code"`
	Message  string          `json:"message"`
	Position *graph.Position `json:"position,omitempty"`
	Snippet  string          `json:"snippet,omitempty"`
}

// handleParse parses the request body as a diagram and returns graph JSON.
// Results are cached by content hash; a cache hit skips the parse entirely.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	text, ok := s.readDiagram(w, r)
	if !ok {
		return
	}

	key := cache.Hash([]byte(text))
	if data, hit, err := s.cache.Get(r.Context(), key); err == nil && hit {
		writeJSONBytes(w, http.StatusOK, data)
		return
	}

	g, err := ascii.Parse(text)
	if err != nil {
		s.writeParseError(w, err)
		return
	}
	data, err := graph.MarshalGraph(g)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, nserrors.Wrap(nserrors.ErrCodeInternal, err, "encode graph"))
		return
	}
	if err := s.cache.Set(r.Context(), key, data, cache.DefaultTTL); err != nil {
		s.logger.Warn("cache write failed", "error", err)
	}
	writeJSONBytes(w, http.StatusOK, data)
}

// handleSave parses the request body and stores the result under {name}.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, nserrors.New(nserrors.ErrCodeUnavailable, "graph store not configured"))
		return
	}
	name := chi.URLParam(r, "name")
	if !store.ValidName(name) {
		s.writeError(w, http.StatusBadRequest, nserrors.New(nserrors.ErrCodeInvalidName, "invalid graph name %q", name))
		return
	}
	text, ok := s.readDiagram(w, r)
	if !ok {
		return
	}

	g, err := ascii.Parse(text)
	if err != nil {
		s.writeParseError(w, err)
		return
	}
	if err := s.store.Save(r.Context(), name, g); err != nil {
		s.writeError(w, http.StatusInternalServerError, nserrors.Wrap(nserrors.ErrCodeStorage, err, "save graph %q", name))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"name":       name,
		"node_count": g.NodeCount(),
		"edge_count": g.EdgeCount(),
	})
}

// handleGet fetches a stored graph as JSON.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, nserrors.New(nserrors.ErrCodeUnavailable, "graph store not configured"))
		return
	}
	name := chi.URLParam(r, "name")
	g, err := s.store.Load(r.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, nserrors.New(nserrors.ErrCodeGraphNotFound, "no graph named %q", name))
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, nserrors.Wrap(nserrors.ErrCodeStorage, err, "load graph %q", name))
		return
	}
	writeJSON(w, http.StatusOK, graph.FromGraph(g))
}

// handleList returns Info for all stored graphs.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, nserrors.New(nserrors.ErrCodeUnavailable, "graph store not configured"))
		return
	}
	infos, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, nserrors.Wrap(nserrors.ErrCodeStorage, err, "list graphs"))
		return
	}
	if infos == nil {
		infos = []store.Info{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"graphs": infos})
}

// handleDelete removes a stored graph.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, nserrors.New(nserrors.ErrCodeUnavailable, "graph store not configured"))
		return
	}
	name := chi.URLParam(r, "name")
	err := s.store.Delete(r.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, nserrors.New(nserrors.ErrCodeGraphNotFound, "no graph named %q", name))
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, nserrors.Wrap(nserrors.ErrCodeStorage, err, "delete graph %q", name))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readDiagram reads and validates a diagram request body. On failure it has
// already written the error response and returns ok=false.
func (s *Server) readDiagram(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDiagramBytes+1))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, nserrors.Wrap(nserrors.ErrCodeInvalidInput, err, "read request body"))
		return "", false
	}
	if len(body) == 0 {
		s.writeError(w, http.StatusBadRequest, nserrors.New(nserrors.ErrCodeInvalidInput, "request body is empty"))
		return "", false
	}
	if len(body) > maxDiagramBytes {
		s.writeError(w, http.StatusRequestEntityTooLarge, nserrors.New(nserrors.ErrCodeInvalidInput, "diagram exceeds %d bytes", maxDiagramBytes))
		return "", false
	}
	return string(body), true
}

// writeParseError maps an ascii parse failure to a 422 with code, position,
// and rendered snippet.
func (s *Server) writeParseError(w http.ResponseWriter, err error) {
	detail := errorDetail{
		Code:    nserrors.ErrCodeInvalidDiagram,
		Message: nserrors.UserMessage(err),
	}
	var edgeErr *ascii.EdgeError
	if errors.As(err, &edgeErr) {
		switch {
		case errors.Is(err, ascii.ErrTooFewNodes):
			detail.Code = nserrors.ErrCodeEdgeTooFewNodes
		case errors.Is(err, ascii.ErrTooManyNodes):
			detail.Code = nserrors.ErrCodeEdgeTooManyNodes
		}
		detail.Position = &graph.Position{X: edgeErr.Pos.X, Y: edgeErr.Pos.Y}
		detail.Snippet = edgeErr.Snippet
	}
	writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: detail})
}

func (s *Server) writeError(w http.ResponseWriter, status int, err *nserrors.Error) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: err.Code, Message: err.Message}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONBytes(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
