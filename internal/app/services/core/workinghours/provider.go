package workinghours

import (
	"context"

	"agendaclin-service/internal/app/contracts"
	"agendaclin-service/internal/app/models"
)

type workingHoursProvider struct {
	repository contracts.WorkingHoursRepository
}

// NewWorkingHoursProvider exposes the repository through the read contract the
// availability engine consumes.
func NewWorkingHoursProvider(repository contracts.WorkingHoursRepository) contracts.WorkingHoursProvider {
	return &workingHoursProvider{repository: repository}
}

func (p *workingHoursProvider) WorkingHoursFor(ctx context.Context, clinicID string, weekday int) ([]models.WorkingHoursRule, error) {
	return p.repository.FindActiveByClinicIDAndWeekday(ctx, clinicID, weekday)
}

func (p *workingHoursProvider) HasConfiguredRules(ctx context.Context, clinicID string) (bool, error) {
	count, err := p.repository.CountByClinicID(ctx, clinicID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
