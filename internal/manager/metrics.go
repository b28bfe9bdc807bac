package manager

import "github.com/prometheus/client_golang/prometheus"

var (
	loadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tourismd",
			Subsystem: "manager",
			Name:      "loads_total",
			Help:      "Backend construction attempts by model and outcome",
		},
		[]string{"model", "outcome"},
	)

	fallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tourismd",
			Subsystem: "manager",
			Name:      "fallbacks_total",
			Help:      "Initializations served by the fallback model",
		},
	)

	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tourismd",
			Subsystem: "manager",
			Name:      "predictions_total",
			Help:      "Predictions by variant and outcome",
		},
		[]string{"variant", "outcome"},
	)

	inferenceDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "tourismd",
			Subsystem: "manager",
			Name:      "inference_duration_seconds",
			Help:      "Duration of backend Classify calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	inflightGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "tourismd",
			Subsystem: "manager",
			Name:      "inflight_predictions",
			Help:      "Classify calls currently running",
		},
	)

	tooBusyTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tourismd",
			Subsystem: "manager",
			Name:      "admission_timeouts_total",
			Help:      "Predictions rejected because no backend slot freed up in time",
		},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tourismd",
			Subsystem: "manager",
			Name:      "cache_lookups_total",
			Help:      "Prediction cache lookups by result",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(loadsTotal, fallbacksTotal, predictionsTotal, inferenceDuration, inflightGauge, tooBusyTotal, cacheLookups)
}
