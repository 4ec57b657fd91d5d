package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeCreated    = "created"
	OutcomeOutOfRange = "out_of_range"
	OutcomeConflict   = "conflict"
	OutcomeReference  = "reference"
	OutcomeError      = "error"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planetarium_http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planetarium_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	reservations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planetarium_reservations_total",
			Help: "Reservation attempts by outcome",
		},
		[]string{"outcome"},
	)

	ticketsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "planetarium_tickets_created_total",
			Help: "Tickets committed as part of a reservation",
		},
	)
)

func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func TrackReservation(outcome string) {
	reservations.WithLabelValues(outcome).Inc()
}

func TrackTicketsCreated(n int) {
	ticketsCreated.Add(float64(n))
}
