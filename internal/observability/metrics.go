package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts failed Redis commands by operation.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogapi_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "blogapi_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// EntityEvents counts published entity change events.
	EntityEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogapi_entity_events_total",
		Help: "Total entity change events published",
	}, []string{"entity", "type"})
)

// ObserveQuery records the latency of a database query that began at start.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		ObserveQuery(operation, table, start)
	}
}

// RecordEntityEvent increments the entity events counter.
func RecordEntityEvent(entity, eventType string) {
	EntityEvents.WithLabelValues(entity, eventType).Inc()
}
