package routers

import (
	"agendaclin-service/internal/app/services/core/workinghours"

	"github.com/go-chi/chi/v5"
)

func attachWorkingHoursRoutes(router chi.Router, workingHoursController *workinghours.WorkingHoursController) {
	router.Get("/{clinic_id}/working-hours", workingHoursController.FindByClinicID)
	router.Put("/{clinic_id}/working-hours", workingHoursController.ReplaceWeekday)
	router.Post("/{clinic_id}/working-hours/seed-default", workingHoursController.SeedDefault)
}
