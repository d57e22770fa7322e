// Package server implements the netsketch HTTP API.
//
// The API exposes the diagram parser and the graph store over HTTP:
//
//	POST   /v1/parse          parse a diagram body, return graph JSON
//	PUT    /v1/graphs/{name}  parse a diagram body and store it under name
//	GET    /v1/graphs/{name}  fetch a stored graph
//	GET    /v1/graphs         list stored graphs
//	DELETE /v1/graphs/{name}  delete a stored graph
//
// Parse failures return 422 with the structured error code, the offending
// grid position, and the rendered snippet of the defective geometry, so API
// clients can show users exactly where the drawing is broken.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/netsketch/pkg/cache"
	"github.com/matzehuels/netsketch/pkg/store"
)

// maxDiagramBytes bounds request bodies. Diagrams are hand-drawn text;
// anything beyond this is almost certainly not one.
const maxDiagramBytes = 1 << 20

// Server wires the parser, cache, and store behind a chi router.
type Server struct {
	logger *log.Logger
	cache  cache.Cache
	store  store.Store
	router chi.Router
	http   *http.Server
}

// New assembles a server. The cache may be a NullCache and the store may be
// nil, in which case the /v1/graphs routes respond 503. Parse results are
// cached under the "parse" scope, shared with the CLI when both point at
// the same backend.
func New(logger *log.Logger, c cache.Cache, s store.Store) *Server {
	srv := &Server{logger: logger, cache: cache.NewScoped(c, "parse"), store: s}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(srv.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Post("/v1/parse", srv.handleParse)
	r.Route("/v1/graphs", func(r chi.Router) {
		r.Get("/", srv.handleList)
		r.Put("/{name}", srv.handleSave)
		r.Get("/{name}", srv.handleGet)
		r.Delete("/{name}", srv.handleDelete)
	})
	r.Get("/healthz", srv.handleHealth)

	srv.router = r
	return srv
}

// Handler returns the root http.Handler for the server.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the server on addr until the listener fails or
// [Server.Shutdown] is called.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Infof("Listening on %s", addr)
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s.http.ListenAndServe()
}

// Shutdown gracefully stops a server started with ListenAndServe, waiting
// for in-flight requests up to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
