/*
Package servers implements the HTTP server of the signature registry.

This package handles server configuration, lifecycle management and routing
for the registry API.

# Routes

  - POST /submit-public-key, POST /verify-message: see package handlers
  - GET /livez, /readyz: liveness and readiness probes
  - GET /drain, /undrain: toggle readiness ahead of a shutdown
  - /debug/*: pprof, when EnablePprof is set

Every API route is wrapped in the go-utils slog access logger; panics are
recovered by chi's Recoverer.

# Server Lifecycle

  - Initialization with the configuration and a ready key registry
  - Background operation to avoid blocking the main application
  - Graceful shutdown with connection draining
  - Metrics exposure through a dedicated port

# Example Usage

	cfg := &api.HTTPServerConfig{
	    ListenAddr:               ":3000",
	    MetricsAddr:              "127.0.0.1:8090",
	    Log:                      logger,
	    DrainDuration:            45 * time.Second,
	    GracefulShutdownDuration: 30 * time.Second,
	    ReadTimeout:              60 * time.Second,
	    WriteTimeout:             30 * time.Second,
	}

	server, err := servers.New(cfg, reg)
	if err != nil {
	    return err
	}
	server.RunInBackground()
	defer server.Shutdown()
*/
package servers
