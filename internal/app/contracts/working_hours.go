package contracts

import (
	"context"

	"agendaclin-service/internal/app/models"
	"agendaclin-service/internal/pkg/dto/requests"
	"agendaclin-service/internal/pkg/dto/responses"
)

// WorkingHoursProvider resolves the active schedule rules a clinic has on one
// weekday (0 = Sunday). An empty slice with a nil error means the clinic has
// no configuration for that weekday. HasConfiguredRules distinguishes a clinic
// with no rules at all (fallback candidate) from one that configured other
// weekdays and simply closes on this one.
type WorkingHoursProvider interface {
	WorkingHoursFor(ctx context.Context, clinicID string, weekday int) ([]models.WorkingHoursRule, error)
	HasConfiguredRules(ctx context.Context, clinicID string) (bool, error)
}

type WorkingHoursRepository interface {
	FindByClinicID(ctx context.Context, clinicID string) ([]models.WorkingHoursRule, error)
	FindActiveByClinicIDAndWeekday(ctx context.Context, clinicID string, weekday int) ([]models.WorkingHoursRule, error)
	ReplaceWeekday(ctx context.Context, clinicID string, weekday int, rules []models.WorkingHoursRule) ([]models.WorkingHoursRule, error)
	InsertMany(ctx context.Context, rules []models.WorkingHoursRule) ([]models.WorkingHoursRule, error)
	CountByClinicID(ctx context.Context, clinicID string) (int64, error)
}

type WorkingHoursUsecase interface {
	FindByClinicID(ctx context.Context, clinicID string) (*responses.WorkingHoursConfiguration, error)
	ReplaceWeekday(ctx context.Context, clinicID string, request *requests.ReplaceWeekdayWorkingHours) ([]responses.WorkingHoursRule, error)
	SeedDefault(ctx context.Context, clinicID string) ([]responses.WorkingHoursRule, error)
}
