package corrector

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes per-dictionary rewrite counts and timings, adapted from
// the observability package's CounterVec/HistogramVec pattern.
type Metrics struct {
	applied  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics builds and registers a Metrics against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		applied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dicrector",
			Subsystem: "corrector",
			Name:      "dictionary_changes_total",
			Help:      "Number of node rewrites applied by a dictionary.",
		}, []string{"dictionary"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dicrector",
			Subsystem: "corrector",
			Name:      "dictionary_duration_seconds",
			Help:      "Time spent applying a dictionary to one line.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"dictionary"}),
	}
	reg.MustRegister(m.applied, m.duration)
	return m
}

// observeDictionary records one dictionary application against a line.
func (m *Metrics) observeDictionary(name string, changed int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.applied.WithLabelValues(name).Add(float64(changed))
	m.duration.WithLabelValues(name).Observe(elapsed.Seconds())
}
