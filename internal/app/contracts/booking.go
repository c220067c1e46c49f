package contracts

import (
	"context"
	"time"

	"agendaclin-service/internal/app/models"
	"agendaclin-service/internal/pkg/dto/requests"
	"agendaclin-service/internal/pkg/dto/responses"
)

// BookingLookup resolves the wall-clock times (HH:MM, clinic timezone)
// already occupied by active bookings on one calendar date. An empty
// professionalID aggregates across every professional of the clinic.
type BookingLookup interface {
	OccupiedTimes(ctx context.Context, clinicID, date, professionalID string) (map[string]struct{}, error)
}

type BookingRepository interface {
	FindActiveByClinicAndRange(ctx context.Context, clinicID string, from, to time.Time, professionalID string) ([]models.Booking, error)
	FindByClinicAndRange(ctx context.Context, clinicID string, from, to time.Time, professionalID string, page, pageSize int) ([]models.Booking, int64, error)
	FindByID(ctx context.Context, bookingID string) (*models.Booking, error)
	Insert(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus, notes string) error
	FindStalePending(ctx context.Context, createdBefore time.Time, limit int64) ([]models.Booking, error)
	EnsureIndexes(ctx context.Context) error
}

type BookingUsecase interface {
	Create(ctx context.Context, request *requests.CreateBooking) (*responses.Booking, error)
	FindByID(ctx context.Context, bookingID string) (*responses.Booking, error)
	FindAll(ctx context.Context, request *requests.ListBookings, pagination *requests.Pagination) ([]responses.Booking, *responses.Pagination, error)
	UpdateStatus(ctx context.Context, bookingID string, request *requests.UpdateBookingStatus) (*responses.Booking, error)
	ExpireStalePending(ctx context.Context) (int, error)
}
