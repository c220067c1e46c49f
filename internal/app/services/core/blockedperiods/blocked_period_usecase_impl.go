package blockedperiods

import (
	"context"
	"fmt"
	"sync"

	"agendaclin-service/internal/app/contracts"
	"agendaclin-service/internal/app/models"
	"agendaclin-service/internal/pkg/constvars"
	"agendaclin-service/internal/pkg/dto/requests"
	"agendaclin-service/internal/pkg/dto/responses"
	"agendaclin-service/internal/pkg/exceptions"
	"agendaclin-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type blockedPeriodUsecase struct {
	BlockedPeriodRepository contracts.BlockedPeriodRepository
	ClinicRepository        contracts.ClinicRepository
	Log                     *zap.Logger
}

var (
	blockedPeriodUsecaseInstance contracts.BlockedPeriodUsecase
	onceBlockedPeriodUsecase     sync.Once
)

func NewBlockedPeriodUsecase(
	blockedPeriodRepository contracts.BlockedPeriodRepository,
	clinicRepository contracts.ClinicRepository,
	logger *zap.Logger,
) contracts.BlockedPeriodUsecase {
	onceBlockedPeriodUsecase.Do(func() {
		instance := &blockedPeriodUsecase{
			BlockedPeriodRepository: blockedPeriodRepository,
			ClinicRepository:        clinicRepository,
			Log:                     logger,
		}
		blockedPeriodUsecaseInstance = instance
	})
	return blockedPeriodUsecaseInstance
}

func (uc *blockedPeriodUsecase) FindByClinicID(ctx context.Context, clinicID string) ([]responses.BlockedPeriod, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("blockedPeriodUsecase.FindByClinicID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
	)

	if err := uc.ensureClinicExists(ctx, clinicID); err != nil {
		return nil, err
	}

	periods, err := uc.BlockedPeriodRepository.FindByClinicID(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	response := make([]responses.BlockedPeriod, len(periods))
	for i, period := range periods {
		response[i] = period.ConvertIntoResponse()
	}
	return response, nil
}

func (uc *blockedPeriodUsecase) Create(ctx context.Context, clinicID string, request *requests.CreateBlockedPeriod) (*responses.BlockedPeriod, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("blockedPeriodUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	if request.EndDate < request.StartDate {
		return nil, exceptions.ErrInvalidDate(fmt.Errorf("end date %s precedes start date %s", request.EndDate, request.StartDate))
	}
	if err := uc.ensureClinicExists(ctx, clinicID); err != nil {
		return nil, err
	}

	period := &models.BlockedPeriod{
		ClinicID:  clinicID,
		StartDate: request.StartDate,
		EndDate:   request.EndDate,
		Reason:    request.Reason,
	}
	if request.ProfessionalID != "" {
		professional, err := uc.ClinicRepository.FindProfessionalByID(ctx, clinicID, request.ProfessionalID)
		if err != nil {
			return nil, err
		}
		if professional == nil {
			return nil, exceptions.ErrProfessionalNotInClinic(fmt.Errorf("professional %s is not in clinic %s", request.ProfessionalID, clinicID))
		}
		period.ProfessionalID = &request.ProfessionalID
	}

	saved, err := uc.BlockedPeriodRepository.Insert(ctx, period)
	if err != nil {
		return nil, err
	}

	response := saved.ConvertIntoResponse()
	return &response, nil
}

func (uc *blockedPeriodUsecase) Delete(ctx context.Context, clinicID, periodID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("blockedPeriodUsecase.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
	)

	if err := uc.ensureClinicExists(ctx, clinicID); err != nil {
		return err
	}
	return uc.BlockedPeriodRepository.DeleteByID(ctx, clinicID, periodID)
}

func (uc *blockedPeriodUsecase) ensureClinicExists(ctx context.Context, clinicID string) error {
	clinic, err := uc.ClinicRepository.FindByID(ctx, clinicID)
	if err != nil {
		return err
	}
	if clinic == nil {
		return exceptions.ErrClinicNotFound(fmt.Errorf("clinic %s not found", clinicID))
	}
	return nil
}
