package blockedperiods

import (
	"context"
	"testing"

	"agendaclin-service/internal/app/contracts"
	"agendaclin-service/internal/app/models"

	"github.com/stretchr/testify/assert"
)

type fakeBlockedPeriodRepository struct {
	periods []models.BlockedPeriod
}

func (f *fakeBlockedPeriodRepository) FindByClinicID(ctx context.Context, clinicID string) ([]models.BlockedPeriod, error) {
	return f.periods, nil
}

func (f *fakeBlockedPeriodRepository) FindByClinicIDCoveringDate(ctx context.Context, clinicID, date string) ([]models.BlockedPeriod, error) {
	var covering []models.BlockedPeriod
	for _, period := range f.periods {
		if period.ContainsDate(date) {
			covering = append(covering, period)
		}
	}
	return covering, nil
}

func (f *fakeBlockedPeriodRepository) Insert(ctx context.Context, period *models.BlockedPeriod) (*models.BlockedPeriod, error) {
	return period, nil
}

func (f *fakeBlockedPeriodRepository) DeleteByID(ctx context.Context, clinicID, periodID string) error {
	return nil
}

func TestBlockedPeriodProvider(t *testing.T) {
	ctx := context.Background()
	profID := "prof-1"
	repo := &fakeBlockedPeriodRepository{periods: []models.BlockedPeriod{
		{ID: "global", ClinicID: "clinic-1", StartDate: "2030-06-01", EndDate: "2030-06-05", Reason: "holiday"},
		{ID: "personal", ClinicID: "clinic-1", ProfessionalID: &profID, StartDate: "2030-06-01", EndDate: "2030-06-30"},
	}}
	var provider contracts.BlockedPeriodProvider = NewBlockedPeriodProvider(repo)

	t.Run("any-professional query sees only clinic-wide blocks", func(t *testing.T) {
		periods, err := provider.BlockedPeriodsFor(ctx, "clinic-1", "2030-06-10", "")

		assert.NoError(t, err)
		assert.Empty(t, periods)
	})

	t.Run("professional query sees global and personal blocks", func(t *testing.T) {
		periods, err := provider.BlockedPeriodsFor(ctx, "clinic-1", "2030-06-03", profID)

		assert.NoError(t, err)
		assert.Len(t, periods, 2)
	})

	t.Run("range boundaries are inclusive", func(t *testing.T) {
		periods, err := provider.BlockedPeriodsFor(ctx, "clinic-1", "2030-06-05", "")

		assert.NoError(t, err)
		assert.Len(t, periods, 1)
		assert.Equal(t, "global", periods[0].ID)
	})

	t.Run("date outside every range yields nothing", func(t *testing.T) {
		periods, err := provider.BlockedPeriodsFor(ctx, "clinic-1", "2030-07-01", profID)

		assert.NoError(t, err)
		assert.Empty(t, periods)
	})
}
