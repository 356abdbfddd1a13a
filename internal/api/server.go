// Package api serves the calculators over HTTP.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"intercept-calc/internal/config"
	"intercept-calc/internal/logging"
	"intercept-calc/internal/sim"
)

// Server wraps the HTTP server and router.
type Server struct {
	cfg     *config.Config
	log     *slog.Logger
	frames  sim.FrameWriter
	results sim.ResultWriter
	router  *chi.Mux
}

// Option configures a Server.
type Option func(*Server)

// WithFrameWriter also sends every traced frame to w.
func WithFrameWriter(w sim.FrameWriter) Option {
	return func(s *Server) { s.frames = w }
}

// WithResultWriter also sends every calculation result to w.
func WithResultWriter(w sim.ResultWriter) Option {
	return func(s *Server) { s.results = w }
}

// NewServer returns a server using cfg for form defaults and trace limits.
func NewServer(cfg *config.Config, log *slog.Logger, opts ...Option) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{cfg: cfg, log: log}
	for _, o := range opts {
		o(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(s.withLogger)
	r.Use(metricsMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", metricsHandler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/units", s.handleUnits)
		r.Get("/convert", s.handleConvert)
		r.Get("/collision", s.handleCollisionForm)
		r.Post("/collision", s.handleCollision)
		r.Get("/intercept", s.handleInterceptForm)
		r.Post("/intercept", s.handleIntercept)
		r.Get("/scenarios", s.handleScenarios)
		r.Get("/scenarios/{name}", s.handleScenario)
		r.Post("/trace/{problem}", s.handleTrace)
	})
	r.Get("/ws/trace/{problem}", s.handleTraceStream)
	return r
}

// Router returns the underlying router, useful for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start serves on the configured address until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.API.Addr, Handler: s.router}
	go func() {
		<-ctx.Done()
		ctxTo, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctxTo)
	}()
	s.log.Info("API listening", "addr", s.cfg.API.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) withLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := s.log.With("method", r.Method, "path", r.URL.Path)
		l.Debug("request")
		next.ServeHTTP(w, r.WithContext(logging.NewContext(r.Context(), l)))
	})
}
