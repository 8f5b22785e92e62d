package wire

import (
	"camp-booking/internal/adaptor"
	"camp-booking/pkg/identity"
	"camp-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	verifier identity.Verifier,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(verifier, log))

		// POST /api/bookings - Create new booking (authenticated users only)
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/user/bookings - View booking history (user's own bookings)
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)

		// POST /api/orders - Open a payment order for a booking
		r.Post("/api/orders", bookingHandler.CreateOrder)
	})
}
