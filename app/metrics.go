package app

import "github.com/prometheus/client_golang/prometheus"

var (
	// feeroute_calls_total counts executed calls, split by message path
	// and outcome (ok|err).
	mtxCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feeroute_calls_total",
			Help: "Executed calls by message path and outcome",
		},
		[]string{"path", "result"},
	)

	// feeroute_call_duration_seconds measures call execution time
	// including the cache write.
	mtxCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feeroute_call_duration_seconds",
			Help:    "Call execution time including the store write",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	// feeroute_events_total counts events emitted by successful calls.
	mtxEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feeroute_events_total",
			Help: "Events emitted by successful calls",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(mtxCalls, mtxCallDuration, mtxEvents)
}
