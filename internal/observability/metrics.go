package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SwipesTotal counts recorded swipes by target type and direction.
	SwipesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hackswipe_swipes_total",
		Help: "Total number of swipes recorded",
	}, []string{"target_type", "direction"})

	// MatchesCreated counts newly created matches by context.
	MatchesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hackswipe_matches_created_total",
		Help: "Total number of matches created",
	}, []string{"context"})

	// InquiryDecisions counts leader decisions on inquiries.
	InquiryDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hackswipe_inquiry_decisions_total",
		Help: "Total number of inquiry decisions by outcome",
	}, []string{"status"})

	// MessagesSent counts chat messages persisted.
	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hackswipe_messages_sent_total",
		Help: "Total number of chat messages sent",
	})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hackswipe_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheLookups counts cache hits and misses by keyspace.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hackswipe_cache_lookups_total",
		Help: "Cache lookups by keyspace and result",
	}, []string{"keyspace", "result"})

	// DatabaseQueryLatency records service-level database latency by operation.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hackswipe_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// WebSocketConnections is the gauge of active notification sockets.
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hackswipe_websocket_connections",
		Help: "Number of active WebSocket connections",
	})

	// WebSocketEventsTotal counts realtime events delivered by type.
	WebSocketEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hackswipe_websocket_events_total",
		Help: "Total WebSocket events by type",
	}, []string{"event_type"})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by hub and reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hackswipe_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})

	// JobRuns counts scheduled job executions by job and outcome.
	JobRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hackswipe_job_runs_total",
		Help: "Scheduled job executions by job and outcome",
	}, []string{"job", "outcome"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}
