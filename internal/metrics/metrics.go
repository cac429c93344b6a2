// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Current number of active HTTP requests",
		},
	)

	// Tasks
	TaskOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dailytasker_task_operations_total",
			Help: "Total number of task operations",
		},
		[]string{"operation"}, // create, complete, uncomplete, delete
	)

	// Focus sessions
	FocusCompletionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dailytasker_focus_completions_total",
			Help: "Total number of focus phases that ran to zero",
		},
		[]string{"phase"},
	)

	FocusSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dailytasker_focus_sessions_active",
			Help: "Number of focus session runners held in memory",
		},
	)
)

// TrackTaskOperation increments the task operation counter.
func TrackTaskOperation(operation string) {
	TaskOperationsTotal.WithLabelValues(operation).Inc()
}

// FocusCompleted records a phase that counted down to zero.
func FocusCompleted(phase string) {
	FocusCompletionsTotal.WithLabelValues(phase).Inc()
}

// SetActiveFocusSessions sets the number of live focus runners.
func SetActiveFocusSessions(n int) {
	FocusSessionsActive.Set(float64(n))
}
