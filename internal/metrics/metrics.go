package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "equipment_booking_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "equipment_booking_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "equipment_booking_bookings_created_total",
			Help: "Total number of bookings created",
		},
		[]string{"equipment"},
	)

	BookingConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "equipment_booking_booking_conflicts_total",
			Help: "Total number of booking requests refused for lack of stock",
		},
	)

	BookingCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "equipment_booking_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	EquipmentReturnsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "equipment_booking_equipment_returns_total",
			Help: "Total number of equipment returns",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBookingCreated(equipment string) {
	BookingsCreatedTotal.WithLabelValues(equipment).Inc()
}

func RecordBookingConflict() {
	BookingConflictsTotal.Inc()
}

func RecordBookingCancellation() {
	BookingCancellationsTotal.Inc()
}

func RecordEquipmentReturn() {
	EquipmentReturnsTotal.Inc()
}
