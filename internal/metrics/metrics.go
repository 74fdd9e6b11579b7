package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "omservice",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	bookingEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "omservice",
			Name:      "booking_events_total",
			Help:      "Booking lifecycle events by type.",
		},
		[]string{"event"},
	)

	emailsQueued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "omservice",
			Name:      "emails_queued_total",
			Help:      "Emails handed to the background worker.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingEvents, emailsQueued)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncBookingEvent increments the counter for a booking event type.
func IncBookingEvent(event string) {
	bookingEvents.WithLabelValues(event).Inc()
}

// IncEmailQueued counts a message enqueued for delivery.
func IncEmailQueued() {
	emailsQueued.Inc()
}
