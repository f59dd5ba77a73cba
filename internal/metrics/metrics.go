// Package metrics exposes Prometheus instrumentation for the meal store.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/mealmax/internal/storage"
)

// Recorder counts and times store operations.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// New creates a Recorder and registers its collectors with reg.
func New(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mealmax",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Meal store operations by operation and result.",
		}, []string{"operation", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mealmax",
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Meal store operation latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"operation"}),
	}

	for _, c := range []prometheus.Collector{r.operations, r.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Observe records one finished operation. The result label is storage.Kind(err).
func (r *Recorder) Observe(operation string, err error, took time.Duration) {
	if r == nil {
		return
	}
	r.operations.WithLabelValues(operation, storage.Kind(err)).Inc()
	r.duration.WithLabelValues(operation).Observe(took.Seconds())
}
