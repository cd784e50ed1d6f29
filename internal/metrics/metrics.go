// Package metrics exposes Prometheus collectors for the update cycle.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ambilight"

var (
	cyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cycle",
		Name:      "total",
		Help:      "Update cycles by outcome",
	}, []string{"result"})

	cycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "cycle",
		Name:      "duration_seconds",
		Help:      "Wall time of one update cycle, fetch included",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	})

	edgeSamples = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "frame",
		Name:      "edge_samples",
		Help:      "Sample count of the last accepted frame per screen edge",
	}, []string{"side"})

	stripMeanLevel = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "strip",
		Name:      "mean_level",
		Help:      "Mean channel level (0-255) of the last emitted strip frame",
	})
)

// ObserveCycle records the outcome ("ok", "transport", "malformed", "schema",
// "emit") and duration of a cycle.
func ObserveCycle(result string, seconds float64) {
	cyclesTotal.WithLabelValues(result).Inc()
	cycleDuration.Observe(seconds)
}

func SetEdgeSamples(left, right int) {
	edgeSamples.WithLabelValues("left").Set(float64(left))
	edgeSamples.WithLabelValues("right").Set(float64(right))
}

func SetMeanLevel(v float64) {
	stripMeanLevel.Set(v)
}
