package blockedperiods

import (
	"context"
	"net/http"
	"time"

	"agendaclin-service/internal/app/contracts"
	"agendaclin-service/internal/pkg/constvars"
	"agendaclin-service/internal/pkg/dto/requests"
	"agendaclin-service/internal/pkg/exceptions"
	"agendaclin-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type BlockedPeriodController struct {
	Log                  *zap.Logger
	BlockedPeriodUsecase contracts.BlockedPeriodUsecase
}

func NewBlockedPeriodController(logger *zap.Logger, blockedPeriodUsecase contracts.BlockedPeriodUsecase) *BlockedPeriodController {
	return &BlockedPeriodController{
		Log:                  logger,
		BlockedPeriodUsecase: blockedPeriodUsecase,
	}
}

func (ctrl *BlockedPeriodController) FindByClinicID(w http.ResponseWriter, r *http.Request) {
	clinicID := chi.URLParam(r, constvars.URLParamClinicID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.BlockedPeriodUsecase.FindByClinicID(ctx, clinicID)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetBlockedPeriodsSuccessMessage, result)
}

func (ctrl *BlockedPeriodController) Create(w http.ResponseWriter, r *http.Request) {
	clinicID := chi.URLParam(r, constvars.URLParamClinicID)

	request := new(requests.CreateBlockedPeriod)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.BlockedPeriodUsecase.Create(ctx, clinicID, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateBlockedPeriodSuccess, result)
}

func (ctrl *BlockedPeriodController) Delete(w http.ResponseWriter, r *http.Request) {
	clinicID := chi.URLParam(r, constvars.URLParamClinicID)
	periodID := chi.URLParam(r, constvars.URLParamPeriodID)
	if err := utils.ValidateUrlParamID(periodID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamPeriodID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := ctrl.BlockedPeriodUsecase.Delete(ctx, clinicID, periodID)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteBlockedPeriodSuccess, nil)
}
