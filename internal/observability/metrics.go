// Package observability exposes Prometheus metrics for the recognition
// pipeline.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector of the pipeline, registered on a private
// registry so tests can create isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	FramesProcessed    *prometheus.CounterVec
	Detections         prometheus.Counter
	Decisions          *prometheus.CounterVec
	Discoveries        prometheus.Counter
	EnrichmentFailures prometheus.Counter
	ActiveSessions     prometheus.Gauge
	FrameDuration      prometheus.Histogram
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		FramesProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "faunadex_frames_processed_total",
			Help: "Frames processed, partitioned by outcome.",
		}, []string{"outcome"}),
		Detections: factory.NewCounter(prometheus.CounterOpts{
			Name: "faunadex_detections_total",
			Help: "Individual detections emitted by the primary model.",
		}),
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "faunadex_ensemble_decisions_total",
			Help: "Ensemble decisions, partitioned by method.",
		}, []string{"method"}),
		Discoveries: factory.NewCounter(prometheus.CounterOpts{
			Name: "faunadex_discoveries_total",
			Help: "New discoveries persisted.",
		}),
		EnrichmentFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "faunadex_enrichment_failures_total",
			Help: "Enrichment calls that degraded to placeholder data.",
		}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "faunadex_active_sessions",
			Help: "Currently active recognition sessions.",
		}),
		FrameDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "faunadex_frame_duration_seconds",
			Help:    "End to end processing time per frame.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
	}
}

// Registry returns the underlying registry for HTTP exposition.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
