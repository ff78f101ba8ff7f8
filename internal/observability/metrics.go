package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce           sync.Once
	apiRequestsTotal       *prometheus.CounterVec
	apiLatencySeconds      *prometheus.HistogramVec
	apiErrorsTotal         *prometheus.CounterVec
	evaluationsTotal       *prometheus.CounterVec
	evaluationScores       *prometheus.HistogramVec
	evaluationEventsFailed prometheus.Counter
	styleFormatsTotal      *prometheus.CounterVec
	assistantRequestsTotal *prometheus.CounterVec
	styleStreamsActive     prometheus.Gauge
	catalogExercises       prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "css_lab_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "css_lab_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "css_lab_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		evaluationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "css_lab_evaluations_total",
			Help: "Stylesheet evaluations grouped by exercise and assessment.",
		}, []string{"exercise", "assessment"})

		evaluationScores = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "css_lab_evaluation_score",
			Help:    "Distribution of evaluation scores.",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}, []string{"exercise"})

		evaluationEventsFailed = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "css_lab_evaluation_events_failed_total",
			Help: "Evaluation events that could not be published to the broker.",
		})

		styleFormatsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "css_lab_style_formats_total",
			Help: "Declarations formatted by the style editors.",
		}, []string{"property"})

		assistantRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "css_lab_assistant_requests_total",
			Help: "Assistant requests grouped by operation and outcome.",
		}, []string{"operation", "outcome"})

		styleStreamsActive = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "css_lab_style_streams_active",
			Help: "Open style editor websocket sessions.",
		})

		catalogExercises = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "css_lab_catalog_exercises",
			Help: "Exercises served by the running catalog.",
		})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			evaluationsTotal,
			evaluationScores,
			evaluationEventsFailed,
			styleFormatsTotal,
			assistantRequestsTotal,
			styleStreamsActive,
			catalogExercises,
		)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// Evaluations exposes the evaluation counter.
func Evaluations() *prometheus.CounterVec {
	RegisterMetrics()
	return evaluationsTotal
}

// EvaluationScores exposes the score histogram.
func EvaluationScores() *prometheus.HistogramVec {
	RegisterMetrics()
	return evaluationScores
}

// EvaluationEventsFailed exposes the broker failure counter.
func EvaluationEventsFailed() prometheus.Counter {
	RegisterMetrics()
	return evaluationEventsFailed
}

// StyleFormats exposes the style editor counter.
func StyleFormats() *prometheus.CounterVec {
	RegisterMetrics()
	return styleFormatsTotal
}

// AssistantRequests exposes the assistant counter.
func AssistantRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return assistantRequestsTotal
}

// StyleStreamsActive exposes the open style stream gauge.
func StyleStreamsActive() prometheus.Gauge {
	RegisterMetrics()
	return styleStreamsActive
}
