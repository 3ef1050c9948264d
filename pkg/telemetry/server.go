// Package telemetry exposes the bake pipeline's Prometheus metrics and a
// liveness probe over HTTP, for harness runs long enough to be worth
// scraping (large meshes, CI baking jobs).
package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config holds the telemetry server's own listen settings, separate from
// config.TelemetryConfig so this package stays independent of the
// harness's config layer.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Server serves /metrics (Prometheus) and /healthz (liveness) on its own
// listener, independent of the bake pipeline's goroutines.
type Server struct {
	config     Config
	httpServer *http.Server
}

// NewServer builds a telemetry server. It does not start listening until
// Start is called.
func NewServer(cfg Config) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", healthzHandler)

	return &Server{
		config: cfg,
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start blocks serving HTTP until Stop is called or the listener fails.
// http.ErrServerClosed from a clean Stop is not an error.
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("telemetry: listen on %s: %w", s.config.Addr, err)
	}
	return nil
}

// Stop gracefully shuts the server down within its configured timeout.
func (s *Server) Stop(ctx context.Context) error {
	if s.config.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()
	}
	return s.httpServer.Shutdown(ctx)
}

func healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}
