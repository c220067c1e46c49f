package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"agendaclin-service/internal/app/config"
	"agendaclin-service/internal/app/models"
	"agendaclin-service/internal/pkg/dto/requests"
	"agendaclin-service/internal/pkg/dto/responses"
	"agendaclin-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeWorkingHoursProvider struct {
	rules          []models.WorkingHoursRule
	rulesByWeekday map[int][]models.WorkingHoursRule
	err            error
	calls          int
}

func (f *fakeWorkingHoursProvider) WorkingHoursFor(ctx context.Context, clinicID string, weekday int) ([]models.WorkingHoursRule, error) {
	f.calls++
	if f.rulesByWeekday != nil {
		return f.rulesByWeekday[weekday], f.err
	}
	return f.rules, f.err
}

func (f *fakeWorkingHoursProvider) HasConfiguredRules(ctx context.Context, clinicID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if len(f.rulesByWeekday) > 0 {
		return true, nil
	}
	return len(f.rules) > 0, nil
}

type fakeBlockedPeriodProvider struct {
	periods []models.BlockedPeriod
	err     error
	calls   int
}

func (f *fakeBlockedPeriodProvider) BlockedPeriodsFor(ctx context.Context, clinicID, date, professionalID string) ([]models.BlockedPeriod, error) {
	f.calls++
	return f.periods, f.err
}

type fakeBookingLookup struct {
	occupied map[string]struct{}
	err      error
	calls    int
}

func (f *fakeBookingLookup) OccupiedTimes(ctx context.Context, clinicID, date, professionalID string) (map[string]struct{}, error) {
	f.calls++
	return f.occupied, f.err
}

type fakeClinicRepository struct {
	clinic        *models.Clinic
	professionals map[string]*models.Professional
}

func (f *fakeClinicRepository) FindAll(ctx context.Context, nameFilter string, page, pageSize int) ([]models.Clinic, int64, error) {
	return nil, 0, nil
}

func (f *fakeClinicRepository) FindByID(ctx context.Context, clinicID string) (*models.Clinic, error) {
	if f.clinic != nil && f.clinic.ID == clinicID {
		return f.clinic, nil
	}
	return nil, nil
}

func (f *fakeClinicRepository) FindProfessionalsByClinicID(ctx context.Context, clinicID string) ([]models.Professional, error) {
	return nil, nil
}

func (f *fakeClinicRepository) FindProfessionalByID(ctx context.Context, clinicID, professionalID string) (*models.Professional, error) {
	return f.professionals[professionalID], nil
}

func testConfig() *config.InternalConfig {
	return &config.InternalConfig{
		App: config.App{Timezone: "UTC"},
		Availability: config.Availability{
			FallbackEnabled:              true,
			FallbackStartTimes:           []string{"08:00", "14:00"},
			FallbackEndTimes:             []string{"12:00", "18:00"},
			FallbackSlotDurationMinutes:  30,
			FallbackWeekdays:             []int{1, 2, 3, 4, 5},
			AggregateAcrossProfessionals: true,
			ProviderTimeoutInSeconds:     2,
		},
	}
}

func newTestUsecase(
	workingHours *fakeWorkingHoursProvider,
	blocked *fakeBlockedPeriodProvider,
	lookup *fakeBookingLookup,
	clinics *fakeClinicRepository,
	cfg *config.InternalConfig,
) *availabilityUsecase {
	return &availabilityUsecase{
		WorkingHoursProvider:  workingHours,
		BlockedPeriodProvider: blocked,
		BookingLookup:         lookup,
		ClinicRepository:      clinics,
		InternalConfig:        cfg,
		Log:                   zap.NewNop(),
		fallbackRules:         buildFallbackRules(cfg.Availability),
		defaultLocation:       time.UTC,
	}
}

func openClinic() *fakeClinicRepository {
	return &fakeClinicRepository{
		clinic: &models.Clinic{ID: "clinic-1", Name: "Clinica Central", Timezone: "UTC", Active: true},
		professionals: map[string]*models.Professional{
			"prof-1": {ID: "prof-1", ClinicID: "clinic-1", Name: "Dra. Souza", Active: true},
		},
	}
}

// 2030-06-03 is a Monday.
const futureMondayDate = "2030-06-03"

func TestAvailabilityUsecaseGetAvailableSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("configured rules produce available slots", func(t *testing.T) {
		workingHours := &fakeWorkingHoursProvider{rules: []models.WorkingHoursRule{mondayRule("08:00", "12:00", 30)}}
		uc := newTestUsecase(workingHours, &fakeBlockedPeriodProvider{}, &fakeBookingLookup{}, openClinic(), testConfig())

		slots, err := uc.GetAvailableSlots(ctx, &requests.GetAvailability{ClinicID: "clinic-1", Date: futureMondayDate})

		assert.NoError(t, err)
		assert.Len(t, slots, 8)
		assert.True(t, slots[0].Available)
	})

	t.Run("occupied times from lookup mark slots as booked", func(t *testing.T) {
		workingHours := &fakeWorkingHoursProvider{rules: []models.WorkingHoursRule{mondayRule("08:00", "12:00", 30)}}
		lookup := &fakeBookingLookup{occupied: map[string]struct{}{"09:00": {}}}
		uc := newTestUsecase(workingHours, &fakeBlockedPeriodProvider{}, lookup, openClinic(), testConfig())

		slots, err := uc.GetAvailableSlots(ctx, &requests.GetAvailability{ClinicID: "clinic-1", Date: futureMondayDate})

		assert.NoError(t, err)
		booked := 0
		for _, slot := range slots {
			if !slot.Available {
				booked++
				assert.Equal(t, "09:00", slot.Time)
				assert.Equal(t, responses.SlotReasonAlreadyBooked, *slot.Reason)
			}
		}
		assert.Equal(t, 1, booked)
	})

	t.Run("fallback schedule is used when the clinic has no rules", func(t *testing.T) {
		workingHours := &fakeWorkingHoursProvider{}
		uc := newTestUsecase(workingHours, &fakeBlockedPeriodProvider{}, &fakeBookingLookup{}, openClinic(), testConfig())

		slots, err := uc.GetAvailableSlots(ctx, &requests.GetAvailability{ClinicID: "clinic-1", Date: futureMondayDate})

		assert.NoError(t, err)
		// 08:00-12:00 and 14:00-18:00 at 30 minutes: sixteen slots.
		assert.Len(t, slots, 16)
		assert.Equal(t, "08:00", slots[0].Time)
		assert.Equal(t, "17:30", slots[len(slots)-1].Time)
	})

	t.Run("partially configured clinic keeps other weekdays closed", func(t *testing.T) {
		workingHours := &fakeWorkingHoursProvider{rulesByWeekday: map[int][]models.WorkingHoursRule{
			1: {mondayRule("08:00", "12:00", 30)},
		}}
		uc := newTestUsecase(workingHours, &fakeBlockedPeriodProvider{}, &fakeBookingLookup{}, openClinic(), testConfig())

		// 2030-06-04 is a Tuesday; the clinic only configured Mondays, so no
		// fallback applies even though Tuesday is in the fallback plan.
		slots, err := uc.GetAvailableSlots(ctx, &requests.GetAvailability{ClinicID: "clinic-1", Date: "2030-06-04"})

		assert.NoError(t, err)
		assert.Empty(t, slots)

		mondaySlots, err := uc.GetAvailableSlots(ctx, &requests.GetAvailability{ClinicID: "clinic-1", Date: futureMondayDate})
		assert.NoError(t, err)
		assert.Len(t, mondaySlots, 8)
	})

	t.Run("fallback disabled with no rules yields empty after consulting providers", func(t *testing.T) {
		cfg := testConfig()
		cfg.Availability.FallbackEnabled = false
		workingHours := &fakeWorkingHoursProvider{}
		blocked := &fakeBlockedPeriodProvider{}
		lookup := &fakeBookingLookup{}
		uc := newTestUsecase(workingHours, blocked, lookup, openClinic(), cfg)

		slots, err := uc.GetAvailableSlots(ctx, &requests.GetAvailability{ClinicID: "clinic-1", Date: futureMondayDate})

		assert.NoError(t, err)
		assert.Empty(t, slots)
		assert.Equal(t, 1, workingHours.calls)
		assert.Equal(t, 1, blocked.calls)
		assert.Equal(t, 1, lookup.calls)
	})

	t.Run("weekday outside the fallback plan is a closed day", func(t *testing.T) {
		uc := newTestUsecase(&fakeWorkingHoursProvider{}, &fakeBlockedPeriodProvider{}, &fakeBookingLookup{}, openClinic(), testConfig())

		// 2030-06-02 is a Sunday.
		slots, err := uc.GetAvailableSlots(ctx, &requests.GetAvailability{ClinicID: "clinic-1", Date: "2030-06-02"})

		assert.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("global blocked period empties the day", func(t *testing.T) {
		workingHours := &fakeWorkingHoursProvider{rules: []models.WorkingHoursRule{mondayRule("08:00", "12:00", 30)}}
		blocked := &fakeBlockedPeriodProvider{periods: []models.BlockedPeriod{
			{ClinicID: "clinic-1", StartDate: "2030-06-01", EndDate: "2030-06-10", Reason: "renovation"},
		}}
		uc := newTestUsecase(workingHours, blocked, &fakeBookingLookup{}, openClinic(), testConfig())

		slots, err := uc.GetAvailableSlots(ctx, &requests.GetAvailability{ClinicID: "clinic-1", Date: futureMondayDate})

		assert.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("professional specific block does not leak into any-professional query", func(t *testing.T) {
		profID := "prof-1"
		workingHours := &fakeWorkingHoursProvider{rules: []models.WorkingHoursRule{mondayRule("08:00", "12:00", 30)}}
		blocked := &fakeBlockedPeriodProvider{periods: []models.BlockedPeriod{
			{ClinicID: "clinic-1", ProfessionalID: &profID, StartDate: futureMondayDate, EndDate: futureMondayDate},
		}}
		uc := newTestUsecase(workingHours, blocked, &fakeBookingLookup{}, openClinic(), testConfig())

		anySlots, err := uc.GetAvailableSlots(ctx, &requests.GetAvailability{ClinicID: "clinic-1", Date: futureMondayDate})
		assert.NoError(t, err)
		assert.Len(t, anySlots, 8)

		profSlots, err := uc.GetAvailableSlots(ctx, &requests.GetAvailability{ClinicID: "clinic-1", Date: futureMondayDate, ProfessionalID: profID})
		assert.NoError(t, err)
		assert.Empty(t, profSlots)
	})

	t.Run("working hours provider failure is a retryable provider error", func(t *testing.T) {
		workingHours := &fakeWorkingHoursProvider{err: errors.New("connection refused")}
		uc := newTestUsecase(workingHours, &fakeBlockedPeriodProvider{}, &fakeBookingLookup{}, openClinic(), testConfig())

		slots, err := uc.GetAvailableSlots(ctx, &requests.GetAvailability{ClinicID: "clinic-1", Date: futureMondayDate})

		assert.Nil(t, slots)
		assert.Error(t, err)
		assert.True(t, exceptions.IsRetryable(err))
	})

	t.Run("booking lookup failure is a retryable provider error", func(t *testing.T) {
		workingHours := &fakeWorkingHoursProvider{rules: []models.WorkingHoursRule{mondayRule("08:00", "12:00", 30)}}
		lookup := &fakeBookingLookup{err: errors.New("timeout")}
		uc := newTestUsecase(workingHours, &fakeBlockedPeriodProvider{}, lookup, openClinic(), testConfig())

		slots, err := uc.GetAvailableSlots(ctx, &requests.GetAvailability{ClinicID: "clinic-1", Date: futureMondayDate})

		assert.Nil(t, slots)
		assert.True(t, exceptions.IsRetryable(err))
	})

	t.Run("unknown clinic is rejected", func(t *testing.T) {
		uc := newTestUsecase(&fakeWorkingHoursProvider{}, &fakeBlockedPeriodProvider{}, &fakeBookingLookup{}, openClinic(), testConfig())

		_, err := uc.GetAvailableSlots(ctx, &requests.GetAvailability{ClinicID: "other-clinic", Date: futureMondayDate})

		assert.Error(t, err)
		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 404, customErr.StatusCode)
	})

	t.Run("professional outside the clinic is rejected", func(t *testing.T) {
		uc := newTestUsecase(&fakeWorkingHoursProvider{}, &fakeBlockedPeriodProvider{}, &fakeBookingLookup{}, openClinic(), testConfig())

		_, err := uc.GetAvailableSlots(ctx, &requests.GetAvailability{ClinicID: "clinic-1", Date: futureMondayDate, ProfessionalID: "prof-9"})

		assert.Error(t, err)
		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 400, customErr.StatusCode)
	})

	t.Run("malformed date is rejected before providers run", func(t *testing.T) {
		workingHours := &fakeWorkingHoursProvider{}
		uc := newTestUsecase(workingHours, &fakeBlockedPeriodProvider{}, &fakeBookingLookup{}, openClinic(), testConfig())

		_, err := uc.GetAvailableSlots(ctx, &requests.GetAvailability{ClinicID: "clinic-1", Date: "03/06/2030"})

		assert.Error(t, err)
		assert.Zero(t, workingHours.calls)
	})
}
