package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("POST", "/api/bookings", "201", 0.25)
	RecordHTTPRequest("POST", "/api/bookings", "201", 0.1)
	RecordHTTPRequest("POST", "/api/bookings", "409", 0.05)

	created := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/api/bookings", "201"))
	conflicted := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/api/bookings", "409"))

	assert.Equal(t, float64(2), created)
	assert.Equal(t, float64(1), conflicted)
}

func TestRecordBookingCreated(t *testing.T) {
	BookingsCreatedTotal.Reset()

	RecordBookingCreated("Projector")
	RecordBookingCreated("Projector")
	RecordBookingCreated("Tripod")

	assert.Equal(t, float64(2), testutil.ToFloat64(BookingsCreatedTotal.WithLabelValues("Projector")))
	assert.Equal(t, float64(1), testutil.ToFloat64(BookingsCreatedTotal.WithLabelValues("Tripod")))
}

func TestRecordBookingConflict(t *testing.T) {
	testCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "equipment_booking_booking_conflicts_total_test",
			Help: "Total number of booking requests refused for lack of stock",
		},
	)

	oldCounter := BookingConflictsTotal
	BookingConflictsTotal = testCounter
	defer func() { BookingConflictsTotal = oldCounter }()

	RecordBookingConflict()
	RecordBookingConflict()

	assert.Equal(t, float64(2), testutil.ToFloat64(testCounter))
}
