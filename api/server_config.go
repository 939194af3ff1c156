package api

import (
	"log/slog"
	"time"
)

// Default server settings. The registry listens on port 3000 unless PORT or
// --listen-addr says otherwise.
const (
	DefaultPort                     = "3000"
	DefaultMetricsAddr              = "127.0.0.1:8090"
	DefaultDrainDuration            = 45 * time.Second
	DefaultGracefulShutdownDuration = 30 * time.Second
	DefaultReadTimeout              = 60 * time.Second
	DefaultWriteTimeout             = 30 * time.Second
)

// HTTPServerConfig contains all configuration parameters for the HTTP server.
type HTTPServerConfig struct {
	// ListenAddr is the address and port the HTTP server will listen on.
	ListenAddr string

	// MetricsAddr is the address and port for the Prometheus metrics
	// server. If empty, registration and verification outcomes are still
	// counted but not exposed.
	MetricsAddr string

	// EnablePprof enables the pprof debugging API when true.
	EnablePprof bool

	// Log is the structured logger for server operations.
	Log *slog.Logger

	// DrainDuration is the time to wait after marking server not ready
	// before shutting down, allowing load balancers to detect the change.
	DrainDuration time.Duration

	// GracefulShutdownDuration is the maximum time to wait for in-flight
	// requests to complete during shutdown.
	GracefulShutdownDuration time.Duration

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration before timing out writes of
	// the response.
	WriteTimeout time.Duration
}
