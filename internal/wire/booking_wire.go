package wire

import (
	"equipment-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/bookings - Create new booking
	r.Post("/api/bookings", bookingHandler.CreateBooking)

	// GET /api/bookings - List bookings, ?requester= narrows to one person
	r.Get("/api/bookings", bookingHandler.ListBookings)

	// PUT /api/bookings/{id}/cancel - Cancel own booking, requester in body
	r.Put("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)

	// PUT /api/bookings/{id}/return - Mark equipment as returned
	r.Put("/api/bookings/{id}/return", bookingHandler.ReturnBooking)

	// ==================== ADMIN ROUTES ====================
	// There is no auth layer built in, deployments front these with their own.
	r.Route("/api/admin/bookings", func(r chi.Router) {
		// PUT /api/admin/bookings/{id}/cancel - Cancel any booking (admin)
		r.Put("/{id}/cancel", bookingHandler.AdminCancelBooking)
	})
}
