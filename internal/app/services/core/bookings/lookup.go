package bookings

import (
	"context"
	"time"

	"agendaclin-service/internal/app/config"
	"agendaclin-service/internal/app/contracts"
	"agendaclin-service/internal/pkg/constvars"
)

type bookingLookup struct {
	repository       contracts.BookingRepository
	clinicRepository contracts.ClinicRepository
	internalConfig   *config.InternalConfig
	defaultLocation  *time.Location
}

// NewBookingLookup exposes occupied wall-clock times to the availability
// engine. Times are rendered in the clinic's timezone so they line up with
// the working-hours rules.
func NewBookingLookup(
	repository contracts.BookingRepository,
	clinicRepository contracts.ClinicRepository,
	internalConfig *config.InternalConfig,
) contracts.BookingLookup {
	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		location = time.Local
	}
	return &bookingLookup{
		repository:       repository,
		clinicRepository: clinicRepository,
		internalConfig:   internalConfig,
		defaultLocation:  location,
	}
}

func (l *bookingLookup) OccupiedTimes(ctx context.Context, clinicID, date, professionalID string) (map[string]struct{}, error) {
	location := l.defaultLocation
	clinic, err := l.clinicRepository.FindByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if clinic != nil && clinic.Timezone != "" {
		if clinicLocation, err := time.LoadLocation(clinic.Timezone); err == nil {
			location = clinicLocation
		}
	}

	dayStart, err := time.ParseInLocation(constvars.DateLayout, date, location)
	if err != nil {
		return nil, err
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	active, err := l.repository.FindActiveByClinicAndRange(ctx, clinicID, dayStart, dayEnd, professionalID)
	if err != nil {
		return nil, err
	}

	aggregate := l.internalConfig.Availability.AggregateAcrossProfessionals
	occupied := make(map[string]struct{}, len(active))
	for _, booking := range active {
		// An "any professional" query with aggregation off only counts
		// clinic-level bookings; each professional keeps their own capacity.
		if professionalID == "" && !aggregate && booking.ProfessionalID != nil {
			continue
		}
		occupied[booking.StartAt.In(location).Format(constvars.ClockLayout)] = struct{}{}
	}
	return occupied, nil
}
