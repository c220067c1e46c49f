package routers

import (
	"time"

	"agendaclin-service/internal/app/config"
	"agendaclin-service/internal/app/delivery/http/middlewares"
	"agendaclin-service/internal/app/services/core/availability"
	"agendaclin-service/internal/app/services/core/blockedperiods"
	"agendaclin-service/internal/app/services/core/bookings"
	"agendaclin-service/internal/app/services/core/clinics"
	"agendaclin-service/internal/app/services/core/workinghours"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	availabilityController *availability.AvailabilityController,
	clinicController *clinics.ClinicController,
	workingHoursController *workinghours.WorkingHoursController,
	blockedPeriodController *blockedperiods.BlockedPeriodController,
	bookingController *bookings.BookingController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Duration(internalConfig.App.MaxTimeRequestsPerSeconds)*time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)

	router.Route(internalConfig.App.EndpointPrefix, func(r chi.Router) {
		r.Route("/availability", func(r chi.Router) {
			attachAvailabilityRoutes(r, availabilityController)
		})

		r.Route("/clinics", func(r chi.Router) {
			attachClinicRoutes(r, clinicController)
			attachWorkingHoursRoutes(r, workingHoursController)
			attachBlockedPeriodRoutes(r, blockedPeriodController)
		})

		r.Route("/bookings", func(r chi.Router) {
			attachBookingRoutes(r, bookingController)
		})
	})
}
