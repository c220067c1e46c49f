package routers

import (
	"agendaclin-service/internal/app/services/core/availability"

	"github.com/go-chi/chi/v5"
)

func attachAvailabilityRoutes(router chi.Router, availabilityController *availability.AvailabilityController) {
	router.Get("/", availabilityController.GetAvailableSlots)
}
