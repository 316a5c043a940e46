// Package metrics exposes the process's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blimpco_http_requests_total",
		Help: "Total HTTP requests processed, by route and status.",
	}, []string{"route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "blimpco_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds, by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	EventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blimpco_events_published_total",
		Help: "Total domain events published, by event name and destination.",
	}, []string{"event", "destination"})

	SagaStepsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blimpco_saga_steps_total",
		Help: "Total flight-reservation saga steps driven, by outcome.",
	}, []string{"outcome"})
)
