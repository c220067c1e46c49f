package routers

import (
	"agendaclin-service/internal/app/services/core/bookings"

	"github.com/go-chi/chi/v5"
)

func attachBookingRoutes(router chi.Router, bookingController *bookings.BookingController) {
	router.Post("/", bookingController.Create)
	router.Get("/", bookingController.FindAll)
	router.Get("/{booking_id}", bookingController.FindByID)
	router.Patch("/{booking_id}", bookingController.UpdateStatus)
}
