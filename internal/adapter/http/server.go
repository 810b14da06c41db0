// Package http serves the earthquake map page, its view JSON, and the
// health, readiness, and metrics endpoints.
package http

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/render"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Renderer produces one map view per call.
type Renderer interface {
	Render(ctx context.Context) (render.View, error)
}

// Server exposes the map routes plus health, readiness, and metrics.
type Server struct {
	httpServer *http.Server
	renderer   Renderer
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /, /api/view, /healthz, /readyz, and
// /metrics routes.
func NewServer(addr string, renderer Renderer, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second, // covers one upstream feed fetch
			IdleTimeout:  60 * time.Second,
		},
		renderer: renderer,
		logger:   logger,
	}

	mux.HandleFunc("GET /{$}", s.handleMap)
	mux.HandleFunc("GET /api/view", s.handleView)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	view, err := s.renderer.Render(r.Context())
	if err != nil {
		s.writeRenderError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := render.WriteHTML(&buf, view); err != nil {
		s.logger.Error("write map page failed", "error", err)
		sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to render map page"})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	view, err := s.renderer.Render(r.Context())
	if err != nil {
		s.writeRenderError(w, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	sharedobs.WriteJSON(w, http.StatusOK, view)
}

// writeRenderError maps upstream feed failures to 502 and anything else to 500.
func (s *Server) writeRenderError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "render failed"
	switch {
	case errors.Is(err, domain.ErrFetchFailure):
		status, msg = http.StatusBadGateway, "earthquake feed unavailable"
	case errors.Is(err, domain.ErrMalformedDocument):
		status, msg = http.StatusBadGateway, "earthquake feed returned a malformed document"
	}
	sharedobs.WriteJSON(w, status, map[string]string{"error": msg, "detail": err.Error()})
}
