package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/flowmesh/dataflow/pkg/config"
	"github.com/flowmesh/dataflow/pkg/examplenodes"
	"github.com/flowmesh/dataflow/pkg/graph"
	"github.com/flowmesh/dataflow/pkg/health"
	"github.com/flowmesh/dataflow/pkg/logging"
	"github.com/flowmesh/dataflow/pkg/middleware"
	"github.com/flowmesh/dataflow/pkg/observer"
	"github.com/flowmesh/dataflow/pkg/registry"
	"github.com/flowmesh/dataflow/pkg/scheduler"
	"github.com/flowmesh/dataflow/pkg/telemetry"
)

// Config holds server configuration.
type Config struct {
	Address            string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64
	RequestsPerSecond  float64
	EnableCORS         bool
}

// DefaultConfig returns default server configuration.
func DefaultConfig() Config {
	return Config{
		Address:            ":8080",
		ReadTimeout:        30 * time.Second,
		WriteTimeout:       30 * time.Second,
		ShutdownTimeout:    10 * time.Second,
		MaxRequestBodySize: middleware.MaxGraphSubmissionBytes,
		RequestsPerSecond:  50,
		EnableCORS:         true,
	}
}

// Server is the HTTP+WebSocket control surface for one dataflow engine
// instance: one node registry, at most one built graph, at most one
// in-flight run.
type Server struct {
	config Config

	httpServer        *http.Server
	logger            *logging.Logger
	healthChecker     *health.Checker
	telemetryProvider *telemetry.Provider
	engineConfig      *config.Config

	registry *registry.Registry

	mu      sync.Mutex
	g       *graph.Graph
	exec    *scheduler.Executor
	runDone chan error

	observers *observer.Manager
	examples  map[string]ExampleGraph
}

// New creates a server wired to its own registry, seeded with the
// built-in node catalog (spec.md §4.5: built-ins register before any
// hot-loaded user nodes).
func New(cfg Config, engineConfig *config.Config) (*Server, error) {
	logger := logging.New(logging.DefaultConfig())

	telemetryProvider, err := telemetry.NewProvider(context.Background(), telemetry.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("create telemetry provider: %w", err)
	}

	r := registry.New()
	examplenodes.Register(r)

	healthChecker := health.NewChecker("dataflow-engine", "0.1.0")
	healthChecker.RegisterCheck("registry", func(ctx context.Context) error {
		if len(r.ListRegisteredTypes()) == 0 {
			return fmt.Errorf("no node types registered")
		}
		return nil
	}, 5*time.Second, true)

	s := &Server{
		config:            cfg,
		logger:            logger,
		healthChecker:     healthChecker,
		telemetryProvider: telemetryProvider,
		engineConfig:      engineConfig,
		registry:          r,
		observers:         observer.NewManager(),
		examples:          builtinExamples(r),
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.wrap(mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s, nil
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.healthChecker.HTTPHandler())
	mux.HandleFunc("/health/live", s.healthChecker.LivenessHandler())
	mux.HandleFunc("/health/ready", s.healthChecker.ReadinessHandler())
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/nodes", s.handleNodes)
	mux.HandleFunc("/graph", s.handleGraph)
	mux.HandleFunc("/run", s.handleRun)
	mux.HandleFunc("/export", s.handleExport)
	mux.HandleFunc("/upload-nodes", s.handleUploadNodes)
	mux.HandleFunc("/clear-custom-nodes", s.handleClearCustomNodes)
	mux.HandleFunc("/reload-nodes", s.handleReloadNodes)
	mux.HandleFunc("/examples", s.handleExamples)
	mux.HandleFunc("/examples/", s.handleExampleByKey)
	mux.HandleFunc("/ws/events", s.handleWS)
}

func (s *Server) wrap(h http.Handler) http.Handler {
	wrapped := h
	wrapped = middleware.SizeLimit(s.config.MaxRequestBodySize, wrapped)
	if s.config.RequestsPerSecond > 0 {
		wrapped = middleware.RateLimit(s.config.RequestsPerSecond, wrapped)
	}
	wrapped = middleware.Logging(s.logger, wrapped)
	wrapped = s.recoveryMiddleware(wrapped)
	if s.config.EnableCORS {
		wrapped = s.corsMiddleware(wrapped)
	}
	return wrapped
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.WithField("panic", fmt.Sprintf("%v", rec)).
					WithField("path", r.URL.Path).
					Error("panic recovered")
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.logger.WithField("address", s.config.Address).Info("starting server")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("start server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server, any in-flight run, and
// telemetry export.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	s.mu.Lock()
	if s.exec != nil {
		_ = s.exec.Stop()
	}
	s.mu.Unlock()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	if err := s.telemetryProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown telemetry: %w", err)
	}
	s.logger.Info("server shutdown complete")
	return nil
}
