package wire

import (
	"hypnos-booking/internal/adaptor"
	"hypnos-booking/internal/data/repository"
	"hypnos-booking/pkg/middleware"
	"hypnos-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(config.JWT, log))

		// POST /api/bookings - Reserve a room for a date range
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// PATCH /api/bookings/{id} - Cancel (owner or admin)
		r.Patch("/api/bookings/{id}", bookingHandler.UpdateBooking)

		// GET /api/bookings/{id} - Booking details (owner or admin)
		r.Get("/api/bookings/{id}", bookingHandler.GetBookingByID)

		// GET /api/user/bookings - Caller's own bookings
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.AuthJWT(config.JWT, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Get("/", bookingHandler.GetAllBookings)
	})
}
