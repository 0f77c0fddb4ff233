// Package server exposes the encode and decode pipeline over HTTP.
//
// # Endpoints
//
//	POST /v1/encode   {"rects": [[x1,y1,x2,y2], ...], "labels": true, "units": 0}
//	POST /v1/decode   {"grid": ["1##", "# #", "###"]}
//	POST /v1/verify   {"rects": [[x1,y1,x2,y2], ...], "units": 0}
//	GET  /healthz
//	GET  /version
//
// Every response carries an X-Request-Id header. Errors are reported as
//
//	{"error": {"code": "LABEL_GAP", "message": "...", "diff": ["..."]}}
//
// where diff is present only for reconstruction mismatches.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/boxgrid/pkg/pipeline"
)

const (
	// maxBodyBytes bounds request bodies. The largest legal grid is
	// errors.MaxGridArea cells plus JSON quoting.
	maxBodyBytes = 32 << 20

	shutdownTimeout = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	// Labels is the encode default when a request omits "labels".
	Labels bool
	Logger *log.Logger
}

// Server serves the HTTP API backed by a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	labels bool
	logger *log.Logger
	router chi.Router
}

// New builds a server around runner.
func New(runner *pipeline.Runner, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{runner: runner, labels: opts.Labels, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/encode", s.handleEncode)
		r.Post("/decode", s.handleDecode)
		r.Post("/verify", s.handleVerify)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
