package routers

import (
	"agendaclin-service/internal/app/services/core/blockedperiods"

	"github.com/go-chi/chi/v5"
)

func attachBlockedPeriodRoutes(router chi.Router, blockedPeriodController *blockedperiods.BlockedPeriodController) {
	router.Get("/{clinic_id}/blocked-periods", blockedPeriodController.FindByClinicID)
	router.Post("/{clinic_id}/blocked-periods", blockedPeriodController.Create)
	router.Delete("/{clinic_id}/blocked-periods/{period_id}", blockedPeriodController.Delete)
}
