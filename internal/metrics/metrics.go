package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gascrm_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gascrm_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ActivitiesAppended = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gascrm_activities_appended_total",
			Help: "Activities appended to client histories",
		},
		[]string{"type"},
	)

	NotificationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gascrm_notifications_created_total",
			Help: "Follow-up notifications derived from activities",
		},
	)

	ExportsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gascrm_exports_generated_total",
			Help: "Client spreadsheet exports generated",
		},
	)

	PanicsRecovered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gascrm_panics_recovered_total",
			Help: "Handler panics caught by the recovery middleware",
		},
	)
)
