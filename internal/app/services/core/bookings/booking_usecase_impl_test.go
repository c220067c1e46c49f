package bookings

import (
	"context"
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

type fakeBookingRepository struct {
	bookings map[string]*models.Booking
	inserted []*models.Booking
	updates  map[string]models.BookingStatus
}

func newFakeBookingRepository() *fakeBookingRepository {
	return &fakeBookingRepository{
		bookings: make(map[string]*models.Booking),
		updates:  make(map[string]models.BookingStatus),
	}
}

func (f *fakeBookingRepository) FindActiveByClinicAndRange(ctx context.Context, clinicID string, from, to time.Time, professionalID string) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepository) FindByClinicAndRange(ctx context.Context, clinicID string, from, to time.Time, professionalID string, page, pageSize int) ([]models.Booking, int64, error) {
	return nil, 0, nil
}

func (f *fakeBookingRepository) FindByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	return f.bookings[bookingID], nil
}

func (f *fakeBookingRepository) Insert(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	booking.ID = "booking-1"
	f.inserted = append(f.inserted, booking)
	f.bookings[booking.ID] = booking
	return booking, nil
}

func (f *fakeBookingRepository) UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus, notes string) error {
	f.updates[bookingID] = status
	return nil
}

func (f *fakeBookingRepository) FindStalePending(ctx context.Context, createdBefore time.Time, limit int64) ([]models.Booking, error) {
	var stale []models.Booking
	for _, booking := range f.bookings {
		if booking.Status == models.BookingStatusPending && booking.CreatedAt.Before(createdBefore) {
			stale = append(stale, *booking)
		}
	}
	return stale, nil
}

func (f *fakeBookingRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}

type fakeClinicRepository struct{}

func (f *fakeClinicRepository) FindAll(ctx context.Context, nameFilter string, page, pageSize int) ([]models.Clinic, int64, error) {
	return nil, 0, nil
}

func (f *fakeClinicRepository) FindByID(ctx context.Context, clinicID string) (*models.Clinic, error) {
	if clinicID == "clinic-1" {
		return &models.Clinic{ID: "clinic-1", Timezone: "UTC", Active: true}, nil
	}
	return nil, nil
}

func (f *fakeClinicRepository) FindProfessionalsByClinicID(ctx context.Context, clinicID string) ([]models.Professional, error) {
	return nil, nil
}

func (f *fakeClinicRepository) FindProfessionalByID(ctx context.Context, clinicID, professionalID string) (*models.Professional, error) {
	return nil, nil
}

type fakeAvailabilityUsecase struct {
	slots       []responses.Slot
	invalidated []string
}

func (f *fakeAvailabilityUsecase) GetAvailableSlots(ctx context.Context, request *requests.GetAvailability) ([]responses.Slot, error) {
	return f.slots, nil
}

func (f *fakeAvailabilityUsecase) InvalidateCache(ctx context.Context, clinicID, date, professionalID string) {
	f.invalidated = append(f.invalidated, clinicID+"|"+date+"|"+professionalID)
}

type fakeLockService struct {
	acquire  bool
	unlocked []string
}

func (f *fakeLockService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	return f.acquire, "token", nil
}

func (f *fakeLockService) Unlock(ctx context.Context, key, lockValue string) error {
	f.unlocked = append(f.unlocked, key)
	return nil
}

func (f *fakeLockService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	return nil
}

type fakeEventPublisher struct {
	published []string
}

func (f *fakeEventPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	f.published = append(f.published, routingKey)
	return nil
}

func (f *fakeEventPublisher) Close() error { return nil }

func newTestUsecase(repo *fakeBookingRepository, availability *fakeAvailabilityUsecase, locker *fakeLockService, publisher *fakeEventPublisher) *bookingUsecase {
	return &bookingUsecase{
		BookingRepository:   repo,
		ClinicRepository:    &fakeClinicRepository{},
		AvailabilityUsecase: availability,
		LockService:         locker,
		EventPublisher:      publisher,
		InternalConfig: &config.InternalConfig{
			App: config.App{Timezone: "UTC"},
			Booking: config.Booking{
				DayLockTTLInSeconds:    10,
				PendingExpiryInMinutes: 30,
				ExpiryBatchSize:        100,
			},
		},
		Log:             zap.NewNop(),
		defaultLocation: time.UTC,
	}
}

func openSlots() []responses.Slot {
	return []responses.Slot{
		responses.AvailableSlot("09:00"),
		responses.UnavailableSlot("09:30", responses.SlotReasonAlreadyBooked),
	}
}

func validCreateRequest() *requests.CreateBooking {
	return &requests.CreateBooking{
		ClinicID:    "clinic-1",
		PatientName: "Ana Lima",
		Date:        "2030-06-03",
		Time:        "09:00",
	}
}

func TestBookingUsecaseCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("available slot produces a pending booking and an event", func(t *testing.T) {
		repo := newFakeBookingRepository()
		availability := &fakeAvailabilityUsecase{slots: openSlots()}
		locker := &fakeLockService{acquire: true}
		publisher := &fakeEventPublisher{}
		uc := newTestUsecase(repo, availability, locker, publisher)

		result, err := uc.Create(ctx, validCreateRequest())

		assert.NoError(t, err)
		assert.Equal(t, "pending", result.Status)
		assert.Len(t, repo.inserted, 1)
		assert.Equal(t, []string{"booking.created"}, publisher.published)
		assert.Len(t, availability.invalidated, 1)
		assert.Len(t, locker.unlocked, 1)
		assert.Equal(t, time.Date(2030, time.June, 3, 9, 0, 0, 0, time.UTC), repo.inserted[0].StartAt)
	})

	t.Run("unavailable slot is rejected with a conflict", func(t *testing.T) {
		repo := newFakeBookingRepository()
		uc := newTestUsecase(repo, &fakeAvailabilityUsecase{slots: openSlots()}, &fakeLockService{acquire: true}, &fakeEventPublisher{})

		request := validCreateRequest()
		request.Time = "09:30"
		_, err := uc.Create(ctx, request)

		assert.Error(t, err)
		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 409, customErr.StatusCode)
		assert.Empty(t, repo.inserted)
	})

	t.Run("time outside the schedule is rejected", func(t *testing.T) {
		uc := newTestUsecase(newFakeBookingRepository(), &fakeAvailabilityUsecase{slots: openSlots()}, &fakeLockService{acquire: true}, &fakeEventPublisher{})

		request := validCreateRequest()
		request.Time = "22:00"
		_, err := uc.Create(ctx, request)

		assert.Error(t, err)
	})

	t.Run("contended day lock is surfaced as a conflict", func(t *testing.T) {
		repo := newFakeBookingRepository()
		uc := newTestUsecase(repo, &fakeAvailabilityUsecase{slots: openSlots()}, &fakeLockService{acquire: false}, &fakeEventPublisher{})

		_, err := uc.Create(ctx, validCreateRequest())

		assert.Error(t, err)
		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 409, customErr.StatusCode)
		assert.Empty(t, repo.inserted)
	})

	t.Run("unknown clinic is rejected", func(t *testing.T) {
		uc := newTestUsecase(newFakeBookingRepository(), &fakeAvailabilityUsecase{slots: openSlots()}, &fakeLockService{acquire: true}, &fakeEventPublisher{})

		request := validCreateRequest()
		request.ClinicID = "other-clinic"
		_, err := uc.Create(ctx, request)

		assert.Error(t, err)
	})
}

func TestBookingUsecaseUpdateStatus(t *testing.T) {
	ctx := context.Background()

	seed := func(repo *fakeBookingRepository, status models.BookingStatus) {
		repo.bookings["booking-1"] = &models.Booking{
			ID:       "booking-1",
			ClinicID: "clinic-1",
			StartAt:  time.Date(2030, time.June, 3, 9, 0, 0, 0, time.UTC),
			Status:   status,
		}
	}

	t.Run("pending booking can be confirmed", func(t *testing.T) {
		repo := newFakeBookingRepository()
		seed(repo, models.BookingStatusPending)
		publisher := &fakeEventPublisher{}
		availability := &fakeAvailabilityUsecase{}
		uc := newTestUsecase(repo, availability, &fakeLockService{acquire: true}, publisher)

		result, err := uc.UpdateStatus(ctx, "booking-1", &requests.UpdateBookingStatus{Status: "confirmed"})

		assert.NoError(t, err)
		assert.Equal(t, "confirmed", result.Status)
		assert.Equal(t, []string{"booking.confirmed"}, publisher.published)
		assert.Len(t, availability.invalidated, 1)
	})

	t.Run("completed booking cannot be confirmed again", func(t *testing.T) {
		repo := newFakeBookingRepository()
		seed(repo, models.BookingStatusCompleted)
		uc := newTestUsecase(repo, &fakeAvailabilityUsecase{}, &fakeLockService{acquire: true}, &fakeEventPublisher{})

		_, err := uc.UpdateStatus(ctx, "booking-1", &requests.UpdateBookingStatus{Status: "confirmed"})

		assert.Error(t, err)
	})

	t.Run("pending booking cannot be completed directly", func(t *testing.T) {
		repo := newFakeBookingRepository()
		seed(repo, models.BookingStatusPending)
		uc := newTestUsecase(repo, &fakeAvailabilityUsecase{}, &fakeLockService{acquire: true}, &fakeEventPublisher{})

		_, err := uc.UpdateStatus(ctx, "booking-1", &requests.UpdateBookingStatus{Status: "completed"})

		assert.Error(t, err)
	})

	t.Run("unknown booking is a not found error", func(t *testing.T) {
		uc := newTestUsecase(newFakeBookingRepository(), &fakeAvailabilityUsecase{}, &fakeLockService{acquire: true}, &fakeEventPublisher{})

		_, err := uc.UpdateStatus(ctx, "missing", &requests.UpdateBookingStatus{Status: "confirmed"})

		assert.Error(t, err)
		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 404, customErr.StatusCode)
	})
}

func TestBookingUsecaseExpireStalePending(t *testing.T) {
	ctx := context.Background()

	t.Run("old pending bookings are canceled and announced", func(t *testing.T) {
		repo := newFakeBookingRepository()
		repo.bookings["stale"] = &models.Booking{
			ID:        "stale",
			ClinicID:  "clinic-1",
			StartAt:   time.Date(2030, time.June, 3, 9, 0, 0, 0, time.UTC),
			Status:    models.BookingStatusPending,
			CreatedAt: time.Now().UTC().Add(-2 * time.Hour),
		}
		repo.bookings["fresh"] = &models.Booking{
			ID:        "fresh",
			ClinicID:  "clinic-1",
			StartAt:   time.Date(2030, time.June, 3, 10, 0, 0, 0, time.UTC),
			Status:    models.BookingStatusPending,
			CreatedAt: time.Now().UTC(),
		}
		publisher := &fakeEventPublisher{}
		uc := newTestUsecase(repo, &fakeAvailabilityUsecase{}, &fakeLockService{acquire: true}, publisher)

		expired, err := uc.ExpireStalePending(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, expired)
		assert.Equal(t, models.BookingStatusCanceled, repo.updates["stale"])
		assert.NotContains(t, repo.updates, "fresh")
		assert.Equal(t, []string{"booking.expired"}, publisher.published)
	})
}
