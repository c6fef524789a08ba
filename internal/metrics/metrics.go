package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	DiscountApplied = "applied"
	DiscountNone    = "none"
	DiscountError   = "error"
)

var (
	FlightsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flightapi_flights_created_total",
		Help: "The total number of flights stored",
	})
	DiscountLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flightapi_discount_lookups_total",
		Help: "Discount service lookups by outcome",
	}, []string{"outcome"})
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flightapi_http_request_duration_seconds",
		Help:    "Time taken to serve HTTP requests",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	}, []string{"method", "route", "status"})
	EventsConsumed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flightapi_worker_events_consumed_total",
		Help: "The total number of flight events handled by the worker",
	})
)
