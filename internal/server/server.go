// Package server exposes the render pipeline over HTTP.
//
// Routes:
//
//	POST /v1/render          render a JSON or YAML graph document
//	GET  /v1/graphs/{hash}   re-render a graph stored by an earlier POST
//	GET  /v1/renderers       describe the available formats as a graph
//	GET  /v1/health          liveness probe
//	GET  /metrics            Prometheus metrics, when enabled
//
// The output format is negotiated from the Accept header; a "format" query
// parameter overrides it. Unsupported formats yield 406 Not Acceptable.
package server

import (
	"context"
	stdErrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/factsmission/tlds/pkg/pipeline"
)

// Options configures a Server.
type Options struct {
	// MaxBodyBytes caps request bodies. Zero means 10 MiB.
	MaxBodyBytes int64
	// TTL is passed to the pipeline for cached artifacts.
	TTL time.Duration
	// DefaultFormat answers requests without an Accept header. Empty means
	// the first registered format.
	DefaultFormat string
	// Raw makes unescaped RDFa the default; "raw" query parameters override it.
	Raw bool
	// Metrics is mounted at /metrics when non-nil.
	Metrics http.Handler

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server routes HTTP requests to a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	opts   Options
	router chi.Router
}

// New creates a server. The runner's registry decides which formats are
// offered.
func New(runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 10 << 20
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger, opts: opts}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/renderers", s.handleRenderers)
		r.Post("/render", s.handleRender)
		r.Get("/graphs/{hash}", s.handleGraph)
	})
	if s.opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.opts.Metrics)
	}
	return r
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully,
// giving in-flight requests up to five seconds to finish.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.opts.ReadTimeout,
		WriteTimeout:      s.opts.WriteTimeout,
		IdleTimeout:       60 * time.Second,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
