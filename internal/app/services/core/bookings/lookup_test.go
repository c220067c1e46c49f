package bookings

import (
	"context"
	"testing"
	"time"

	"agendaclin-service/internal/app/config"
	"agendaclin-service/internal/app/models"

	"github.com/stretchr/testify/assert"
)

type fixedRangeRepository struct {
	fakeBookingRepository
	active []models.Booking
}

func (f *fixedRangeRepository) FindActiveByClinicAndRange(ctx context.Context, clinicID string, from, to time.Time, professionalID string) ([]models.Booking, error) {
	return f.active, nil
}

func newTestLookup(active []models.Booking, aggregate bool) *bookingLookup {
	return &bookingLookup{
		repository:       &fixedRangeRepository{active: active},
		clinicRepository: &fakeClinicRepository{},
		internalConfig: &config.InternalConfig{
			App:          config.App{Timezone: "UTC"},
			Availability: config.Availability{AggregateAcrossProfessionals: aggregate},
		},
		defaultLocation: time.UTC,
	}
}

func TestBookingLookupOccupiedTimes(t *testing.T) {
	ctx := context.Background()
	professional := "prof-1"
	active := []models.Booking{
		{
			ClinicID: "clinic-1",
			StartAt:  time.Date(2030, time.June, 3, 9, 0, 0, 0, time.UTC),
			Status:   models.BookingStatusConfirmed,
		},
		{
			ClinicID:       "clinic-1",
			ProfessionalID: &professional,
			StartAt:        time.Date(2030, time.June, 3, 10, 0, 0, 0, time.UTC),
			Status:         models.BookingStatusPending,
		},
	}

	t.Run("aggregation counts every active booking", func(t *testing.T) {
		lookup := newTestLookup(active, true)

		occupied, err := lookup.OccupiedTimes(ctx, "clinic-1", "2030-06-03", "")

		assert.NoError(t, err)
		assert.Contains(t, occupied, "09:00")
		assert.Contains(t, occupied, "10:00")
	})

	t.Run("without aggregation professional bookings keep their own capacity", func(t *testing.T) {
		lookup := newTestLookup(active, false)

		occupied, err := lookup.OccupiedTimes(ctx, "clinic-1", "2030-06-03", "")

		assert.NoError(t, err)
		assert.Contains(t, occupied, "09:00")
		assert.NotContains(t, occupied, "10:00")
	})

	t.Run("professional queries are never filtered", func(t *testing.T) {
		lookup := newTestLookup(active, false)

		occupied, err := lookup.OccupiedTimes(ctx, "clinic-1", "2030-06-03", professional)

		assert.NoError(t, err)
		assert.Contains(t, occupied, "10:00")
	})

	t.Run("malformed date is an error", func(t *testing.T) {
		lookup := newTestLookup(active, true)

		_, err := lookup.OccupiedTimes(ctx, "clinic-1", "03/06/2030", "")

		assert.Error(t, err)
	})
}
