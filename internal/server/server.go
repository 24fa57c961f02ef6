// Package server provides the HTTP server exposing the modular Fibonacci
// backends as a small JSON API.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/fibmod/internal/config"
	apperrors "github.com/agbru/fibmod/internal/errors"
	"github.com/agbru/fibmod/internal/fibmod"
	"github.com/agbru/fibmod/internal/logging"
)

// Timeouts groups the HTTP server timeout knobs.
type Timeouts struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultServerTimeouts returns conservative defaults for a computation API
// whose handlers complete in microseconds.
func DefaultServerTimeouts() Timeouts {
	return Timeouts{
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server represents the HTTP server for the fibmod API.
// It wraps the standard http.Server and adds application-specific
// configuration and graceful shutdown capabilities.
type Server struct {
	registry       *fibmod.Registry
	cfg            config.AppConfig
	httpServer     *http.Server
	logger         logging.Logger
	shutdownSignal chan os.Signal
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	timeouts       Timeouts
}

// Option customizes a Server during construction.
type Option func(*Server)

// WithLogger sets a custom logger for the server.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithRateLimiter sets a custom rate limiter for the server.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(s *Server) { s.rateLimiter = rl }
}

// WithSecurityConfig sets a custom security configuration for the server.
func WithSecurityConfig(sc SecurityConfig) Option {
	return func(s *Server) { s.securityConfig = sc }
}

// NewServer creates a new Server instance with the given backend registry
// and configuration.
//
// Parameters:
//   - registry: The backend registry to serve computations from.
//   - cfg: The application configuration (port, timeout).
//   - opts: Optional functional options for customizing the server.
//
// Returns:
//   - *Server: A pointer to the initialized Server.
func NewServer(registry *fibmod.Registry, cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		registry:       registry,
		cfg:            cfg,
		logger:         logging.NewLogger(os.Stdout, "server"),
		shutdownSignal: make(chan os.Signal, 1),
		securityConfig: DefaultSecurityConfig(),
		timeouts:       DefaultServerTimeouts(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.rateLimiter == nil {
		s.rateLimiter = NewRateLimiter(DefaultRateLimiterConfig())
	}

	mux := http.NewServeMux()

	// Middleware chain: Security -> RateLimit -> Logging -> Metrics -> Handler
	mux.HandleFunc("/fib", s.wrapWithMiddleware(s.handleFib))
	mux.HandleFunc("/health", s.wrapWithMiddleware(s.handleHealth))
	mux.HandleFunc("/backends", s.wrapWithMiddleware(s.handleBackends))
	mux.Handle("/metrics", promhttp.Handler())

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}

	return s
}

// wrapWithMiddleware applies the full middleware chain to a handler.
func (s *Server) wrapWithMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	wrapped := metricsMiddleware(handler)
	wrapped = s.loggingMiddleware(wrapped)
	wrapped = RateLimitMiddleware(s.rateLimiter, wrapped)
	wrapped = SecurityMiddleware(s.securityConfig, wrapped)
	return wrapped
}

// Start runs the HTTP server until a shutdown signal or a fatal error, then
// shuts it down gracefully. It returns a process exit code.
func (s *Server) Start() int {
	signal.Notify(s.shutdownSignal, os.Interrupt, syscall.SIGTERM)
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("starting server",
			logging.String("addr", s.httpServer.Addr),
			logging.String("backends", "fib, health, backends, metrics"))

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-s.shutdownSignal:
		s.logger.Info("shutdown signal received, initiating graceful shutdown")
	case err := <-errCh:
		s.logger.Error("server failed", apperrors.NewServerError("listen", err))
		return apperrors.ExitErrorGeneric
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("graceful shutdown failed", err)
		return apperrors.ExitErrorGeneric
	}

	s.logger.Info("server stopped")
	return apperrors.ExitSuccess
}

// Shutdown stops the server programmatically. Used by tests.
func (s *Server) Shutdown() {
	s.shutdownSignal <- os.Interrupt
}
