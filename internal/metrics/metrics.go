package metrics

import (
	"regexp"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sources of writes.
const (
	SourceHTTP   = "http"
	SourceIngest = "ingest"
	SourceSeed   = "seed"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	EventsCreated      *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	Queries            *prometheus.CounterVec
	QueryDuration      *prometheus.HistogramVec
	RequestDuration    *prometheus.HistogramVec
	LiveSubscribers    prometheus.Gauge
	LiveDropped        prometheus.Counter
}

// New creates the metrics and registers them on reg. Tests pass a fresh
// prometheus.NewRegistry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		EventsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "audit_events_created_total",
			Help: "Audit events persisted, by entity type, status and write source",
		}, []string{"entity_type", "status", "source"}),
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "audit_event_validation_failures_total",
			Help: "Write candidates rejected by validation",
		}, []string{"source"}),
		Queries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "audit_queries_total",
			Help: "Audit trail queries served, by kind",
		}, []string{"kind"}),
		QueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "audit_query_duration_seconds",
			Help:    "Audit trail query latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		LiveSubscribers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "audit_live_subscribers",
			Help: "Open live tail connections",
		}),
		LiveDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "audit_live_dropped_total",
			Help: "Live tail deliveries dropped because a subscriber fell behind",
		}),
	}
}

// objectIDSegment matches hex ObjectIDs in request paths.
var objectIDSegment = regexp.MustCompile(`/[0-9a-f]{24}(/|$)`)

// NormalizePath keeps label cardinality bounded by collapsing identifiers.
func NormalizePath(path string) string {
	return objectIDSegment.ReplaceAllString(path, "/{id}$1")
}

// Nil receivers record nothing so callers need no guards.

func (m *Metrics) EventCreated(entityType, status, source string) {
	if m == nil {
		return
	}
	m.EventsCreated.WithLabelValues(entityType, status, source).Inc()
}

func (m *Metrics) ValidationFailed(source string) {
	if m == nil {
		return
	}
	m.ValidationFailures.WithLabelValues(source).Inc()
}

func (m *Metrics) QueryServed(kind string, took time.Duration) {
	if m == nil {
		return
	}
	m.Queries.WithLabelValues(kind).Inc()
	m.QueryDuration.WithLabelValues(kind).Observe(took.Seconds())
}

func (m *Metrics) RequestServed(method, path string, status int, took time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.
		WithLabelValues(method, NormalizePath(path), strconv.Itoa(status)).
		Observe(took.Seconds())
}

func (m *Metrics) Subscribed(delta float64) {
	if m == nil {
		return
	}
	m.LiveSubscribers.Add(delta)
}

func (m *Metrics) LiveDrop() {
	if m == nil {
		return
	}
	m.LiveDropped.Inc()
}
