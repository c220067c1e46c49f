package blockedperiods

import (
	"context"

	"agendaclin-service/internal/app/contracts"
	"agendaclin-service/internal/app/models"
)

type blockedPeriodProvider struct {
	repository contracts.BlockedPeriodRepository
}

// NewBlockedPeriodProvider exposes the repository through the read contract
// the availability engine consumes. Professional filtering happens here so a
// professional-specific block never reaches an "any professional" caller.
func NewBlockedPeriodProvider(repository contracts.BlockedPeriodRepository) contracts.BlockedPeriodProvider {
	return &blockedPeriodProvider{repository: repository}
}

func (p *blockedPeriodProvider) BlockedPeriodsFor(ctx context.Context, clinicID, date, professionalID string) ([]models.BlockedPeriod, error) {
	periods, err := p.repository.FindByClinicIDCoveringDate(ctx, clinicID, date)
	if err != nil {
		return nil, err
	}

	applicable := make([]models.BlockedPeriod, 0, len(periods))
	for _, period := range periods {
		if period.AppliesTo(professionalID) {
			applicable = append(applicable, period)
		}
	}
	return applicable, nil
}
