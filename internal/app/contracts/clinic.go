package contracts

import (
	"context"

	"agendaclin-service/internal/app/models"
	"agendaclin-service/internal/pkg/dto/responses"
)

type ClinicRepository interface {
	FindAll(ctx context.Context, nameFilter string, page, pageSize int) ([]models.Clinic, int64, error)
	FindByID(ctx context.Context, clinicID string) (*models.Clinic, error)
	FindProfessionalsByClinicID(ctx context.Context, clinicID string) ([]models.Professional, error)
	FindProfessionalByID(ctx context.Context, clinicID, professionalID string) (*models.Professional, error)
}

type ClinicUsecase interface {
	FindAll(ctx context.Context, nameFilter string, page, pageSize int) ([]responses.Clinic, *responses.Pagination, error)
	FindByID(ctx context.Context, clinicID string) (*responses.Clinic, error)
	FindProfessionalsByClinicID(ctx context.Context, clinicID string) ([]responses.Professional, error)
	// EnsureProfessionalInClinic returns ErrProfessionalNotInClinic when the
	// professional does not belong to the clinic or is inactive.
	EnsureProfessionalInClinic(ctx context.Context, clinicID, professionalID string) error
}
