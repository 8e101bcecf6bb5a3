package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RenderMetrics counts receipt renders per variant and outcome.
type RenderMetrics struct {
	renders  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewRenderMetrics(reg prometheus.Registerer) *RenderMetrics {
	factory := promauto.With(reg)
	return &RenderMetrics{
		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "receipt_renders_total",
			Help: "Receipt renders, partitioned by layout variant and outcome.",
		}, []string{"variant", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "receipt_render_duration_seconds",
			Help:    "Wall time of the full fetch-compose-protect pipeline.",
			Buckets: prometheus.DefBuckets,
		}, []string{"variant"}),
	}
}

// Observe is nil-safe so callers without a registry can pass nil.
func (m *RenderMetrics) Observe(variant, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(variant, outcome).Inc()
	m.duration.WithLabelValues(variant).Observe(elapsed.Seconds())
}
