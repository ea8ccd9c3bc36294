// Package api serves the render service over HTTP.
//
// Routes:
//
//	GET  /health                         liveness and build version
//	GET  /api/styles                     style catalogue as JSON
//	POST /api/style-transfer-advanced    multipart render, answers image/png
//
// The render endpoint accepts the form fields written by remote.Client, so
// a sketchify CLI can use another instance as its remote strategy. Errors
// are JSON bodies {"error", "code", "request_id"} with a status derived from
// the error code.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sketchify/sketchify/pkg/pipeline"
	"github.com/sketchify/sketchify/pkg/raster"
)

// Defaults for [Config].
const (
	DefaultAddr      = ":5001"
	DefaultMaxUpload = 20 << 20
	// DefaultRenderTimeout bounds one render request.
	DefaultRenderTimeout = 2 * time.Minute
)

// Config configures a [Server].
type Config struct {
	Addr string
	// MaxUpload bounds the request body in bytes.
	MaxUpload int64
	// MaxDimension caps the working size when the request has no
	// resolution field.
	MaxDimension  int
	RenderTimeout time.Duration
	// AllowOrigin is sent as Access-Control-Allow-Origin.
	AllowOrigin string
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxUpload <= 0 {
		c.MaxUpload = DefaultMaxUpload
	}
	if c.MaxDimension == 0 {
		c.MaxDimension = raster.MaxDimension
	}
	if c.RenderTimeout <= 0 {
		c.RenderTimeout = DefaultRenderTimeout
	}
	if c.AllowOrigin == "" {
		c.AllowOrigin = "*"
	}
}

// Server is the HTTP render service.
type Server struct {
	runner *pipeline.Runner
	cfg    Config
	logger *log.Logger
	router chi.Router
}

// New returns a server rendering through runner.
func New(runner *pipeline.Runner, cfg Config, logger *log.Logger) *Server {
	cfg.setDefaults()
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{runner: runner, cfg: cfg, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(s.cors)

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/styles", s.handleStyles)
		r.Post("/style-transfer-advanced", s.handleRender)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "no such route")
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.cfg.Addr }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
