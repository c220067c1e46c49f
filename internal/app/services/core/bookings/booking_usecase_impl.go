package bookings

import (
	"context"
	"fmt"
	"sync"
	"time"

	"agendaclin-service/internal/app/config"
	"agendaclin-service/internal/app/contracts"
	"agendaclin-service/internal/app/models"
	"agendaclin-service/internal/pkg/constvars"
	"agendaclin-service/internal/pkg/dto/requests"
	"agendaclin-service/internal/pkg/dto/responses"
	"agendaclin-service/internal/pkg/exceptions"
	"agendaclin-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type bookingUsecase struct {
	BookingRepository   contracts.BookingRepository
	ClinicRepository    contracts.ClinicRepository
	AvailabilityUsecase contracts.AvailabilityUsecase
	LockService         contracts.LockerService
	EventPublisher      contracts.EventPublisher
	InternalConfig      *config.InternalConfig
	Log                 *zap.Logger

	defaultLocation *time.Location
}

var (
	bookingUsecaseInstance contracts.BookingUsecase
	onceBookingUsecase     sync.Once
)

func NewBookingUsecase(
	bookingRepository contracts.BookingRepository,
	clinicRepository contracts.ClinicRepository,
	availabilityUsecase contracts.AvailabilityUsecase,
	lockService contracts.LockerService,
	eventPublisher contracts.EventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.BookingUsecase {
	onceBookingUsecase.Do(func() {
		location, err := time.LoadLocation(internalConfig.App.Timezone)
		if err != nil {
			location = time.Local
		}
		instance := &bookingUsecase{
			BookingRepository:   bookingRepository,
			ClinicRepository:    clinicRepository,
			AvailabilityUsecase: availabilityUsecase,
			LockService:         lockService,
			EventPublisher:      eventPublisher,
			InternalConfig:      internalConfig,
			Log:                 logger,
			defaultLocation:     location,
		}
		bookingUsecaseInstance = instance
	})
	return bookingUsecaseInstance
}

// bookingEvent is the payload published on booking lifecycle routing keys.
type bookingEvent struct {
	BookingID      string  `json:"booking_id"`
	ClinicID       string  `json:"clinic_id"`
	ProfessionalID *string `json:"professional_id,omitempty"`
	StartAt        string  `json:"start_at"`
	Status         string  `json:"status"`
	OccurredAt     string  `json:"occurred_at"`
}

func (uc *bookingUsecase) Create(ctx context.Context, request *requests.CreateBooking) (*responses.Booking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, request.ClinicID),
		zap.String(constvars.LoggingDateKey, request.Date),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	clinic, err := uc.ClinicRepository.FindByID(ctx, request.ClinicID)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, exceptions.ErrClinicNotFound(fmt.Errorf("clinic %s not found", request.ClinicID))
	}

	// The availability engine revalidates everything the booking depends on:
	// clinic configuration, blocks, existing bookings and the current time.
	slots, err := uc.AvailabilityUsecase.GetAvailableSlots(ctx, &requests.GetAvailability{
		ClinicID:       request.ClinicID,
		Date:           request.Date,
		ProfessionalID: request.ProfessionalID,
	})
	if err != nil {
		return nil, err
	}
	if !slotIsAvailable(slots, request.Time) {
		return nil, exceptions.ErrSlotNoLongerAvailable(fmt.Errorf("slot %s on %s is not available", request.Time, request.Date))
	}

	lockKey := dayLockKey(request.ClinicID, request.ProfessionalID, request.Date)
	lockTTL := time.Duration(uc.InternalConfig.Booking.DayLockTTLInSeconds) * time.Second
	acquired, lockToken, err := uc.LockService.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrSlotNoLongerAvailable(fmt.Errorf("day lock %s is held by another writer", lockKey))
	}
	defer uc.LockService.Unlock(ctx, lockKey, lockToken)

	startAt, err := uc.resolveStartAt(clinic, request.Date, request.Time)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ClinicID:     request.ClinicID,
		PatientName:  request.PatientName,
		PatientPhone: request.PatientPhone,
		StartAt:      startAt,
		Status:       models.BookingStatusPending,
		Notes:        request.Notes,
	}
	if request.ProfessionalID != "" {
		booking.ProfessionalID = &request.ProfessionalID
	}

	saved, err := uc.BookingRepository.Insert(ctx, booking)
	if err != nil {
		return nil, err
	}

	uc.publishEvent(ctx, constvars.EventBookingCreated, saved)
	uc.AvailabilityUsecase.InvalidateCache(ctx, request.ClinicID, request.Date, request.ProfessionalID)

	uc.Log.Info("bookingUsecase.Create booking created",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, saved.ID),
	)

	response := saved.ConvertIntoResponse()
	return &response, nil
}

func (uc *bookingUsecase) FindByID(ctx context.Context, bookingID string) (*responses.Booking, error) {
	booking, err := uc.BookingRepository.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, exceptions.ErrBookingNotFound(fmt.Errorf("booking %s not found", bookingID))
	}

	response := booking.ConvertIntoResponse()
	return &response, nil
}

func (uc *bookingUsecase) FindAll(ctx context.Context, request *requests.ListBookings, pagination *requests.Pagination) ([]responses.Booking, *responses.Pagination, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, request.ClinicID),
		zap.String(constvars.LoggingDateKey, request.Date),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, nil, exceptions.ErrInputValidation(err)
	}

	clinic, err := uc.ClinicRepository.FindByID(ctx, request.ClinicID)
	if err != nil {
		return nil, nil, err
	}
	if clinic == nil {
		return nil, nil, exceptions.ErrClinicNotFound(fmt.Errorf("clinic %s not found", request.ClinicID))
	}

	location := uc.clinicLocation(clinic)
	dayStart, err := utils.ParseCalendarDate(request.Date, location)
	if err != nil {
		return nil, nil, err
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	bookings, total, err := uc.BookingRepository.FindByClinicAndRange(ctx, request.ClinicID, dayStart, dayEnd, request.ProfessionalID, pagination.Page, pagination.PageSize)
	if err != nil {
		return nil, nil, err
	}

	response := make([]responses.Booking, len(bookings))
	for i, booking := range bookings {
		response[i] = booking.ConvertIntoResponse()
	}

	baseURL := uc.InternalConfig.App.Address + uc.InternalConfig.App.EndpointPrefix + "/bookings"
	paginationData := utils.BuildPaginationResponse(int(total), pagination.Page, pagination.PageSize, baseURL)
	return response, paginationData, nil
}

func (uc *bookingUsecase) UpdateStatus(ctx context.Context, bookingID string, request *requests.UpdateBookingStatus) (*responses.Booking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.UpdateStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
		zap.String("status", request.Status),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	booking, err := uc.BookingRepository.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, exceptions.ErrBookingNotFound(fmt.Errorf("booking %s not found", bookingID))
	}

	nextStatus := models.BookingStatus(request.Status)
	if !booking.Status.CanTransitionTo(nextStatus) {
		return nil, exceptions.ErrInvalidStatusTransition(fmt.Errorf("cannot move booking %s from %s to %s", bookingID, booking.Status, nextStatus))
	}

	if err := uc.BookingRepository.UpdateStatus(ctx, bookingID, nextStatus, request.Notes); err != nil {
		return nil, err
	}
	booking.Status = nextStatus
	if request.Notes != "" {
		booking.Notes = request.Notes
	}

	uc.publishEvent(ctx, routingKeyForStatus(nextStatus), booking)

	date := booking.StartAt.In(uc.bookingLocation(ctx, booking)).Format(constvars.DateLayout)
	professionalID := ""
	if booking.ProfessionalID != nil {
		professionalID = *booking.ProfessionalID
	}
	uc.AvailabilityUsecase.InvalidateCache(ctx, booking.ClinicID, date, professionalID)

	response := booking.ConvertIntoResponse()
	return &response, nil
}

// ExpireStalePending cancels pending bookings older than the configured TTL
// so abandoned holds release their slot. Returns the number expired.
func (uc *bookingUsecase) ExpireStalePending(ctx context.Context) (int, error) {
	cutoff := time.Now().UTC().Add(-time.Duration(uc.InternalConfig.Booking.PendingExpiryInMinutes) * time.Minute)
	limit := int64(uc.InternalConfig.Booking.ExpiryBatchSize)

	stale, err := uc.BookingRepository.FindStalePending(ctx, cutoff, limit)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, booking := range stale {
		if err := uc.BookingRepository.UpdateStatus(ctx, booking.ID, models.BookingStatusCanceled, "expired: pending hold not confirmed in time"); err != nil {
			uc.Log.Error("bookingUsecase.ExpireStalePending failed to cancel booking",
				zap.String(constvars.LoggingBookingIDKey, booking.ID),
				zap.Error(err),
			)
			continue
		}
		expired++

		booking.Status = models.BookingStatusCanceled
		uc.publishEvent(ctx, constvars.EventBookingExpired, &booking)

		date := booking.StartAt.In(uc.bookingLocation(ctx, &booking)).Format(constvars.DateLayout)
		professionalID := ""
		if booking.ProfessionalID != nil {
			professionalID = *booking.ProfessionalID
		}
		uc.AvailabilityUsecase.InvalidateCache(ctx, booking.ClinicID, date, professionalID)
	}
	return expired, nil
}

// publishEvent is best effort: a failed publish is logged, never rolled back
// into the write path.
func (uc *bookingUsecase) publishEvent(ctx context.Context, routingKey string, booking *models.Booking) {
	if uc.EventPublisher == nil {
		return
	}
	event := bookingEvent{
		BookingID:      booking.ID,
		ClinicID:       booking.ClinicID,
		ProfessionalID: booking.ProfessionalID,
		StartAt:        booking.StartAt.UTC().Format(time.RFC3339),
		Status:         string(booking.Status),
		OccurredAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := uc.EventPublisher.Publish(ctx, routingKey, event); err != nil {
		uc.Log.Error("bookingUsecase.publishEvent failed",
			zap.String(constvars.LoggingBookingIDKey, booking.ID),
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
	}
}

func (uc *bookingUsecase) resolveStartAt(clinic *models.Clinic, date, timeOfDay string) (time.Time, error) {
	location := uc.clinicLocation(clinic)
	startAt, err := time.ParseInLocation(constvars.DateLayout+" "+constvars.ClockLayout, date+" "+timeOfDay, location)
	if err != nil {
		return time.Time{}, exceptions.ErrInvalidDate(err)
	}
	return startAt, nil
}

func (uc *bookingUsecase) clinicLocation(clinic *models.Clinic) *time.Location {
	if clinic == nil || clinic.Timezone == "" {
		return uc.defaultLocation
	}
	location, err := time.LoadLocation(clinic.Timezone)
	if err != nil {
		return uc.defaultLocation
	}
	return location
}

func (uc *bookingUsecase) bookingLocation(ctx context.Context, booking *models.Booking) *time.Location {
	clinic, err := uc.ClinicRepository.FindByID(ctx, booking.ClinicID)
	if err != nil {
		return uc.defaultLocation
	}
	return uc.clinicLocation(clinic)
}

func slotIsAvailable(slots []responses.Slot, timeOfDay string) bool {
	for _, slot := range slots {
		if slot.Time == timeOfDay {
			return slot.Available
		}
	}
	return false
}

func dayLockKey(clinicID, professionalID, date string) string {
	if professionalID == "" {
		professionalID = "any"
	}
	return fmt.Sprintf("bookings:lock:%s:%s:%s", clinicID, professionalID, date)
}

func routingKeyForStatus(status models.BookingStatus) string {
	switch status {
	case models.BookingStatusConfirmed:
		return constvars.EventBookingConfirmed
	case models.BookingStatusCompleted:
		return constvars.EventBookingCompleted
	default:
		return constvars.EventBookingCanceled
	}
}
