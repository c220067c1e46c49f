package clinics

import (
	"context"
	"fmt"
	"sync"

	"agendaclin-service/internal/app/config"
	"agendaclin-service/internal/app/contracts"
	"agendaclin-service/internal/pkg/constvars"
	"agendaclin-service/internal/pkg/dto/responses"
	"agendaclin-service/internal/pkg/exceptions"
	"agendaclin-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type clinicUsecase struct {
	ClinicRepository contracts.ClinicRepository
	InternalConfig   *config.InternalConfig
	Log              *zap.Logger
}

var (
	clinicUsecaseInstance contracts.ClinicUsecase
	onceClinicUsecase     sync.Once
)

func NewClinicUsecase(
	clinicRepository contracts.ClinicRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ClinicUsecase {
	onceClinicUsecase.Do(func() {
		instance := &clinicUsecase{
			ClinicRepository: clinicRepository,
			InternalConfig:   internalConfig,
			Log:              logger,
		}
		clinicUsecaseInstance = instance
	})
	return clinicUsecaseInstance
}

func (uc *clinicUsecase) FindAll(ctx context.Context, nameFilter string, page, pageSize int) ([]responses.Clinic, *responses.Pagination, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("clinicUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	clinics, total, err := uc.ClinicRepository.FindAll(ctx, nameFilter, page, pageSize)
	if err != nil {
		return nil, nil, err
	}

	response := make([]responses.Clinic, len(clinics))
	for i, clinic := range clinics {
		response[i] = clinic.ConvertIntoResponse()
	}

	baseURL := uc.InternalConfig.App.Address + uc.InternalConfig.App.EndpointPrefix + "/clinics"
	pagination := utils.BuildPaginationResponse(int(total), page, pageSize, baseURL)
	return response, pagination, nil
}

func (uc *clinicUsecase) FindByID(ctx context.Context, clinicID string) (*responses.Clinic, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("clinicUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
	)

	clinic, err := uc.ClinicRepository.FindByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, exceptions.ErrClinicNotFound(fmt.Errorf("clinic %s not found", clinicID))
	}

	response := clinic.ConvertIntoResponse()
	return &response, nil
}

func (uc *clinicUsecase) FindProfessionalsByClinicID(ctx context.Context, clinicID string) ([]responses.Professional, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("clinicUsecase.FindProfessionalsByClinicID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
	)

	clinic, err := uc.ClinicRepository.FindByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, exceptions.ErrClinicNotFound(fmt.Errorf("clinic %s not found", clinicID))
	}

	professionals, err := uc.ClinicRepository.FindProfessionalsByClinicID(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	response := make([]responses.Professional, len(professionals))
	for i, professional := range professionals {
		response[i] = professional.ConvertIntoResponse()
	}
	return response, nil
}

func (uc *clinicUsecase) EnsureProfessionalInClinic(ctx context.Context, clinicID, professionalID string) error {
	professional, err := uc.ClinicRepository.FindProfessionalByID(ctx, clinicID, professionalID)
	if err != nil {
		return err
	}
	if professional == nil || !professional.Active {
		return exceptions.ErrProfessionalNotInClinic(fmt.Errorf("professional %s is not active in clinic %s", professionalID, clinicID))
	}
	return nil
}
