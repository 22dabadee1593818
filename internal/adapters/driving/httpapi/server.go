// Package httpapi exposes the search orchestrator and airline resolver as a
// JSON HTTP API for the web front end.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/developertarun01/weyfar-cli/internal/core/ports/driving"
	"github.com/developertarun01/weyfar-cli/internal/logger"
)

// ErrMissingSearchService is returned when no search orchestrator is provided.
var ErrMissingSearchService = errors.New("httpapi: search service is required")

// Options configures the HTTP server.
type Options struct {
	// AllowedOrigins lists CORS origins. Defaults to all origins.
	AllowedOrigins []string
}

// Server serves the HTTP API.
type Server struct {
	search  driving.SearchOrchestrator
	airline driving.AirlineResolver
	handler http.Handler
}

// NewServer builds the router. The airline resolver is optional; airline
// routes answer 503 without it.
func NewServer(search driving.SearchOrchestrator, airline driving.AirlineResolver, opts Options) (*Server, error) {
	if search == nil {
		return nil, ErrMissingSearchService
	}

	s := &Server{search: search, airline: airline}

	r := mux.NewRouter()
	s.registerRoutes(r)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	s.handler = c.Handler(r)
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("HTTP API listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
