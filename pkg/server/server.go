package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"fincheck/docmatrix/pkg/config"
	"fincheck/docmatrix/pkg/engine"
	"fincheck/docmatrix/pkg/manager"
	"fincheck/docmatrix/pkg/telemetry/metrics"
)

// Server is the docmatrix HTTP server.
type Server struct {
	cfg       config.ServerConfig
	metricCfg config.MetricsConfig
	catalogs  *manager.Manager
	resolver  *engine.Resolver
	collector *metrics.Collector
	logger    *slog.Logger

	httpServer *http.Server
	mu         sync.Mutex
	running    bool
}

// New creates a server. The collector may be nil when metrics are
// disabled; a nil logger falls back to slog.Default.
func New(cfg *config.Config, catalogs *manager.Manager, collector *metrics.Collector, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:       cfg.Server,
		metricCfg: cfg.Telemetry.Metrics,
		catalogs:  catalogs,
		resolver:  engine.NewResolver(logger),
		collector: collector,
		logger:    logger,
	}
}

// Start runs the server and blocks until the context is cancelled or the
// listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.running = true
	s.httpServer = &http.Server{
		Addr:         s.cfg.ListenAddress,
		Handler:      s.routes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("server listening",
			"address", s.cfg.ListenAddress,
			"static_dir", s.cfg.StaticDir,
		)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server failed: %w", err)

	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	}
}

// routes builds the handler chain.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/documents", s.handleDocuments)
	mux.HandleFunc("GET /api/fields", s.handleFields)
	mux.HandleFunc("POST /api/check", s.handleCheck)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	if s.collector != nil && s.metricCfg.Enabled {
		mux.Handle("GET "+s.metricCfg.Path, s.collector.Handler())
	}

	if s.cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.cfg.StaticDir)))
	}

	return s.withRequestID(s.withLogging(mux))
}
