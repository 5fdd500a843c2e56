package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DispatchesTotal tracks completed dispatches by terminal outcome
	DispatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_dispatches_total",
			Help: "Completed message dispatches by terminal outcome",
		},
		[]string{"outcome"},
	)

	// DispatchDuration tracks dispatch latency in seconds
	DispatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bot_dispatch_duration_seconds",
			Help:    "Message dispatch duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 25},
		},
	)

	// LoginAttemptsTotal tracks login attempts by result
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_login_attempts_total",
			Help: "Login attempts by result",
		},
		[]string{"result"},
	)

	// SensorFetchErrorsTotal tracks failed sensor fetches by error category
	SensorFetchErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_sensor_fetch_errors_total",
			Help: "Failed sensor fetches by error category",
		},
		[]string{"category"},
	)
)
