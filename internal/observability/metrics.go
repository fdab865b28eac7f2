package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mindbridge_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mindbridge_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// CacheRequests counts cache lookups by key group and outcome (hit/miss).
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mindbridge_cache_requests_total",
		Help: "Total cache lookups by key group and outcome",
	}, []string{"group", "outcome"})

	// MoodEntriesTotal counts recorded mood entries by mood value.
	MoodEntriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mindbridge_mood_entries_total",
		Help: "Total mood entries recorded, by mood",
	}, []string{"mood"})

	// AppointmentsTotal counts appointment lifecycle events by action and type.
	AppointmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mindbridge_appointments_total",
		Help: "Total appointment lifecycle events by action and session type",
	}, []string{"action", "type"})

	// PostLikesTotal counts community post likes.
	PostLikesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mindbridge_post_likes_total",
		Help: "Total likes recorded on community posts",
	})

	// PostsCreatedTotal counts community posts created by category.
	PostsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mindbridge_posts_created_total",
		Help: "Total community posts created, by category",
	}, []string{"category"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}

// RecordCacheHit increments the cache hit counter for the key group.
func RecordCacheHit(group string) {
	CacheRequests.WithLabelValues(group, "hit").Inc()
}

// RecordCacheMiss increments the cache miss counter for the key group.
func RecordCacheMiss(group string) {
	CacheRequests.WithLabelValues(group, "miss").Inc()
}
