package routers

import (
	"agendaclin-service/internal/app/services/core/clinics"

	"github.com/go-chi/chi/v5"
)

func attachClinicRoutes(router chi.Router, clinicController *clinics.ClinicController) {
	router.Get("/", clinicController.FindAll)
	router.Get("/{clinic_id}", clinicController.FindByID)
	router.Get("/{clinic_id}/professionals", clinicController.FindProfessionals)
}
