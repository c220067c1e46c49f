package availability

import (
	"context"
	"net/http"
	"time"

	"agendaclin-service/internal/app/contracts"
	"agendaclin-service/internal/pkg/constvars"
	"agendaclin-service/internal/pkg/dto/requests"
	"agendaclin-service/internal/pkg/exceptions"
	"agendaclin-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type AvailabilityController struct {
	Log                 *zap.Logger
	AvailabilityUsecase contracts.AvailabilityUsecase
}

func NewAvailabilityController(logger *zap.Logger, availabilityUsecase contracts.AvailabilityUsecase) *AvailabilityController {
	return &AvailabilityController{
		Log:                 logger,
		AvailabilityUsecase: availabilityUsecase,
	}
}

func (ctrl *AvailabilityController) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	request := &requests.GetAvailability{
		ClinicID:       r.URL.Query().Get("clinic_id"),
		Date:           r.URL.Query().Get("date"),
		ProfessionalID: r.URL.Query().Get("professional_id"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.AvailabilityUsecase.GetAvailableSlots(ctx, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAvailabilitySuccessMessage, result)
}
