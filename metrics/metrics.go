// Package metrics exposes Prometheus metrics for the registry service and
// serves them on a dedicated listener.
package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeAccepted     = "accepted"
	OutcomeUnauthorized = "unauthorized"
	OutcomeBadRequest   = "bad_request"
	OutcomeError        = "error"
	OutcomeValid        = "valid"
	OutcomeInvalid      = "invalid"
)

// Metrics holds the registry collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registrations  *prometheus.CounterVec
	verifications  *prometheus.CounterVec
	verifyDuration prometheus.Histogram
}

// NewMetrics creates and registers the registry collectors on reg. Dashes in
// namespace are replaced since Prometheus names don't allow them.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	namespace = strings.ReplaceAll(namespace, "-", "_")
	factory := promauto.With(reg)
	return &Metrics{
		registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "key_registrations_total",
			Help:      "Public key registration attempts by outcome.",
		}, []string{"outcome"}),
		verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signature_verifications_total",
			Help:      "Signature verification requests by outcome.",
		}, []string{"outcome"}),
		verifyDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "signature_verification_duration_seconds",
			Help:      "Time spent verifying a signature.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
}

// RecordRegistration counts a registration attempt.
func (m *Metrics) RecordRegistration(outcome string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(outcome).Inc()
}

// RecordVerification counts a verification request and its duration.
func (m *Metrics) RecordVerification(outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.verifications.WithLabelValues(outcome).Inc()
	m.verifyDuration.Observe(took.Seconds())
}

// MetricsServer serves /metrics from its own registry.
type MetricsServer struct {
	registry *prometheus.Registry
	metrics  *Metrics
	srv      *http.Server
}

// New creates a metrics server listening on addr with the registry
// collectors plus the Go runtime and process collectors.
func New(namespace, addr string) (*MetricsServer, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}
	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return &MetricsServer{
		registry: reg,
		metrics:  NewMetrics(namespace, reg),
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Metrics returns the collectors to record into.
func (s *MetricsServer) Metrics() *Metrics {
	return s.metrics
}

// Handler returns the /metrics handler, mainly for tests.
func (s *MetricsServer) Handler() http.Handler {
	return s.srv.Handler
}

// ListenAndServe blocks serving metrics until Shutdown is called.
func (s *MetricsServer) ListenAndServe() error {
	return s.srv.ListenAndServe()
}

// Shutdown gracefully stops the metrics listener.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
