package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	EventsConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_events_consumed_total",
			Help: "Number of messages fetched from the broker",
		},
		[]string{"topic"},
	)
	EventsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_events_processed_total",
			Help: "Number of events processed successfully",
		},
		[]string{"topic"},
	)
	EventsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_events_skipped_total",
			Help: "Number of poison messages skipped after validation failure",
		},
		[]string{"topic"},
	)
	EventsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_events_failed_total",
			Help: "Number of events whose processing failed",
		},
		[]string{"topic"},
	)
)

var (
	ConnectAttempts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "activity_broker_connect_attempts_total",
			Help: "Broker connect attempts, including retries",
		},
	)
	ConnectExhausted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "activity_broker_connect_exhausted_total",
			Help: "Connect sequences that exhausted the retry budget",
		},
	)
)

var (
	ProcessingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "activity_event_processing_seconds",
			Help:    "Duration of a single event processing step",
			Buckets: prometheus.DefBuckets,
		},
	)
	RecentEventsSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "activity_recent_events_size",
			Help: "Number of events currently held in the recent-events buffer",
		},
	)
)

func MustRegister() {
	prometheus.MustRegister(
		EventsConsumed, EventsProcessed, EventsSkipped, EventsFailed,
		ConnectAttempts, ConnectExhausted,
		ProcessingDuration, RecentEventsSize,
	)
}
