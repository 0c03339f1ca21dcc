package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts served requests.
	// Labels: method, route (mux pattern), status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "house_rentals",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks handler latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "house_rentals",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// PaymentsTotal counts checkout callbacks.
	// Labels: result (recorded, record_failed, bad_signature)
	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "house_rentals",
			Subsystem: "payments",
			Name:      "callbacks_total",
			Help:      "Total number of payment callbacks by outcome",
		},
		[]string{"result"},
	)

	// RateLimitedTotal counts requests rejected by the login limiter.
	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "house_rentals",
			Subsystem: "auth",
			Name:      "rate_limited_total",
			Help:      "Total number of auth form submissions rejected by the rate limiter",
		},
	)
)

const (
	paymentResultRecorded     = "recorded"
	paymentResultRecordFailed = "record_failed"
	paymentResultBadSignature = "bad_signature"
)
