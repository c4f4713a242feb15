package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by route, method and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sune_http_requests_total",
		Help: "Total number of HTTP requests handled",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration records request latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sune_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// StreamViewsTotal counts view increments by source (detail or manual).
	StreamViewsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sune_stream_views_total",
		Help: "Total number of stream view increments",
	}, []string{"source"})

	// WatchEventsTotal counts tracked watch events by completion.
	WatchEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sune_watch_events_total",
		Help: "Total number of watch events recorded",
	}, []string{"completed"})

	// SearchRequestsTotal counts searches by the backend that answered them.
	SearchRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sune_search_requests_total",
		Help: "Total number of search requests by backend",
	}, []string{"backend"})

	// EventPublishErrors counts catalog events that could not be published.
	EventPublishErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sune_event_publish_errors_total",
		Help: "Total number of catalog events that failed to publish",
	}, []string{"topic"})
)

// ObserveRequest records one finished HTTP request.
func ObserveRequest(method, route string, status int, start time.Time) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}

func RecordView(source string) {
	StreamViewsTotal.WithLabelValues(source).Inc()
}

func RecordWatch(completed bool) {
	WatchEventsTotal.WithLabelValues(strconv.FormatBool(completed)).Inc()
}

func RecordSearch(backend string) {
	SearchRequestsTotal.WithLabelValues(backend).Inc()
}
