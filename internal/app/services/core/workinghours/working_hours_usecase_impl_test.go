package workinghours

import (
	"context"
	"testing"

	"agendaclin-service/internal/app/config"
	"agendaclin-service/internal/app/models"
	"agendaclin-service/internal/pkg/dto/requests"
	"agendaclin-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeWorkingHoursRepository struct {
	rules    []models.WorkingHoursRule
	replaced []models.WorkingHoursRule
	inserted []models.WorkingHoursRule
}

func (f *fakeWorkingHoursRepository) FindByClinicID(ctx context.Context, clinicID string) ([]models.WorkingHoursRule, error) {
	return f.rules, nil
}

func (f *fakeWorkingHoursRepository) FindActiveByClinicIDAndWeekday(ctx context.Context, clinicID string, weekday int) ([]models.WorkingHoursRule, error) {
	var matched []models.WorkingHoursRule
	for _, rule := range f.rules {
		if rule.Weekday == weekday && rule.Active {
			matched = append(matched, rule)
		}
	}
	return matched, nil
}

func (f *fakeWorkingHoursRepository) ReplaceWeekday(ctx context.Context, clinicID string, weekday int, rules []models.WorkingHoursRule) ([]models.WorkingHoursRule, error) {
	f.replaced = rules
	return rules, nil
}

func (f *fakeWorkingHoursRepository) InsertMany(ctx context.Context, rules []models.WorkingHoursRule) ([]models.WorkingHoursRule, error) {
	f.inserted = rules
	return rules, nil
}

func (f *fakeWorkingHoursRepository) CountByClinicID(ctx context.Context, clinicID string) (int64, error) {
	return int64(len(f.rules)), nil
}

type fakeClinicRepository struct {
	clinic *models.Clinic
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
	return nil, nil
}

func newTestUsecase(repo *fakeWorkingHoursRepository) *workingHoursUsecase {
	return &workingHoursUsecase{
		WorkingHoursRepository: repo,
		ClinicRepository:       &fakeClinicRepository{clinic: &models.Clinic{ID: "clinic-1", Active: true}},
		InternalConfig: &config.InternalConfig{
			Availability: config.Availability{
				FallbackEnabled:             true,
				FallbackStartTimes:          []string{"08:00", "14:00"},
				FallbackEndTimes:            []string{"12:00", "18:00"},
				FallbackSlotDurationMinutes: 30,
				FallbackWeekdays:            []int{1, 2, 3, 4, 5},
			},
		},
		Log: zap.NewNop(),
	}
}

func TestWorkingHoursUsecaseFindByClinicID(t *testing.T) {
	ctx := context.Background()

	t.Run("stored rules are returned as-is", func(t *testing.T) {
		repo := &fakeWorkingHoursRepository{rules: []models.WorkingHoursRule{
			{ClinicID: "clinic-1", Weekday: 1, StartTime: "09:00", EndTime: "17:00", SlotDurationMinutes: 30, Active: true},
		}}
		uc := newTestUsecase(repo)

		result, err := uc.FindByClinicID(ctx, "clinic-1")

		assert.NoError(t, err)
		assert.False(t, result.UsedFallback)
		assert.Len(t, result.Rules, 1)
		assert.Equal(t, "09:00", result.Rules[0].StartTime)
	})

	t.Run("empty clinic surfaces the fallback plan", func(t *testing.T) {
		uc := newTestUsecase(&fakeWorkingHoursRepository{})

		result, err := uc.FindByClinicID(ctx, "clinic-1")

		assert.NoError(t, err)
		assert.True(t, result.UsedFallback)
		// Five weekdays, two windows each.
		assert.Len(t, result.Rules, 10)
	})
}

func TestWorkingHoursUsecaseReplaceWeekday(t *testing.T) {
	ctx := context.Background()

	t.Run("valid windows replace the weekday", func(t *testing.T) {
		repo := &fakeWorkingHoursRepository{}
		uc := newTestUsecase(repo)

		result, err := uc.ReplaceWeekday(ctx, "clinic-1", &requests.ReplaceWeekdayWorkingHours{
			Weekday: 1,
			Rules: []requests.WorkingHoursRuleInput{
				{StartTime: "08:00", EndTime: "12:00", SlotDurationMinutes: 30, Active: true},
				{StartTime: "14:00", EndTime: "18:00", SlotDurationMinutes: 30, Active: true},
			},
		})

		assert.NoError(t, err)
		assert.Len(t, result, 2)
		assert.Len(t, repo.replaced, 2)
		assert.Equal(t, 1, repo.replaced[0].Weekday)
	})

	t.Run("inverted window is rejected", func(t *testing.T) {
		uc := newTestUsecase(&fakeWorkingHoursRepository{})

		_, err := uc.ReplaceWeekday(ctx, "clinic-1", &requests.ReplaceWeekdayWorkingHours{
			Weekday: 1,
			Rules: []requests.WorkingHoursRuleInput{
				{StartTime: "12:00", EndTime: "08:00", SlotDurationMinutes: 30, Active: true},
			},
		})

		assert.Error(t, err)
	})

	t.Run("overlapping windows are rejected", func(t *testing.T) {
		uc := newTestUsecase(&fakeWorkingHoursRepository{})

		_, err := uc.ReplaceWeekday(ctx, "clinic-1", &requests.ReplaceWeekdayWorkingHours{
			Weekday: 1,
			Rules: []requests.WorkingHoursRuleInput{
				{StartTime: "08:00", EndTime: "12:00", SlotDurationMinutes: 30, Active: true},
				{StartTime: "11:00", EndTime: "13:00", SlotDurationMinutes: 30, Active: true},
			},
		})

		assert.Error(t, err)
	})

	t.Run("unknown clinic is rejected", func(t *testing.T) {
		uc := newTestUsecase(&fakeWorkingHoursRepository{})

		_, err := uc.ReplaceWeekday(ctx, "missing-clinic", &requests.ReplaceWeekdayWorkingHours{
			Weekday: 1,
			Rules:   []requests.WorkingHoursRuleInput{{StartTime: "08:00", EndTime: "12:00", SlotDurationMinutes: 30, Active: true}},
		})

		assert.Error(t, err)
	})
}

func TestWorkingHoursUsecaseSeedDefault(t *testing.T) {
	ctx := context.Background()

	t.Run("empty clinic receives the default weekly plan", func(t *testing.T) {
		repo := &fakeWorkingHoursRepository{}
		uc := newTestUsecase(repo)

		result, err := uc.SeedDefault(ctx, "clinic-1")

		assert.NoError(t, err)
		// Five weekdays, two windows each.
		assert.Len(t, result, 10)
		assert.Len(t, repo.inserted, 10)
		assert.Equal(t, "08:00", repo.inserted[0].StartTime)
		assert.Equal(t, 30, repo.inserted[0].SlotDurationMinutes)
	})

	t.Run("seeding twice is rejected", func(t *testing.T) {
		repo := &fakeWorkingHoursRepository{rules: []models.WorkingHoursRule{
			{ClinicID: "clinic-1", Weekday: 1, StartTime: "08:00", EndTime: "12:00", SlotDurationMinutes: 30, Active: true},
		}}
		uc := newTestUsecase(repo)

		_, err := uc.SeedDefault(ctx, "clinic-1")

		assert.Error(t, err)
		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 409, customErr.StatusCode)
	})
}
