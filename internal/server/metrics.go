package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for estimatesTotal.
const (
	outcomeOK        = "ok"
	outcomeInvalid   = "invalid"
	outcomeCancelled = "cancelled"
	outcomeBadInput  = "bad_request"
)

var (
	estimatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mortgage_estimates_total",
			Help: "Total number of estimate requests by outcome",
		},
		[]string{"outcome"},
	)

	validationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mortgage_validation_failures_total",
			Help: "Total number of rejected loan inputs by validation code",
		},
		[]string{"code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mortgage_http_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)
