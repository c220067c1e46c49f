package contracts

import (
	"context"

	"agendaclin-service/internal/app/models"
	"agendaclin-service/internal/pkg/dto/requests"
	"agendaclin-service/internal/pkg/dto/responses"
)

// BlockedPeriodProvider resolves the blocks covering one calendar date.
// professionalID may be empty, meaning only clinic-wide blocks are relevant.
type BlockedPeriodProvider interface {
	BlockedPeriodsFor(ctx context.Context, clinicID, date, professionalID string) ([]models.BlockedPeriod, error)
}

type BlockedPeriodRepository interface {
	FindByClinicID(ctx context.Context, clinicID string) ([]models.BlockedPeriod, error)
	FindByClinicIDCoveringDate(ctx context.Context, clinicID, date string) ([]models.BlockedPeriod, error)
	Insert(ctx context.Context, period *models.BlockedPeriod) (*models.BlockedPeriod, error)
	DeleteByID(ctx context.Context, clinicID, periodID string) error
}

type BlockedPeriodUsecase interface {
	FindByClinicID(ctx context.Context, clinicID string) ([]responses.BlockedPeriod, error)
	Create(ctx context.Context, clinicID string, request *requests.CreateBlockedPeriod) (*responses.BlockedPeriod, error)
	Delete(ctx context.Context, clinicID, periodID string) error
}
