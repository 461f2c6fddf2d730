package session

import "github.com/prometheus/client_golang/prometheus"

// Metrics
var (
	tracksCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "radio_tracks_completed_total", Help: "Distinct track completion edges"},
	)
	bumpersFired = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "radio_bumpers_fired_total", Help: "Bumper occurrences started"},
	)
	bumperFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "radio_bumper_failures_total", Help: "Bumper requests that aborted"},
	)
	queueLoads = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "radio_queue_loads_total", Help: "Station queue builds"},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(tracksCompleted, bumpersFired, bumperFailures, queueLoads)
}
