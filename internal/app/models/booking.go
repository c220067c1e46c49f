package models

import (
	"time"

	"agendaclin-service/internal/pkg/dto/responses"
)

// BookingStatus is the closed set of booking lifecycle states.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCanceled  BookingStatus = "canceled"
)

// Occupies reports whether a booking in this status consumes its slot.
// Canceled and completed bookings release the time for re-use.
func (s BookingStatus) Occupies() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// CanTransitionTo encodes the allowed lifecycle moves.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCanceled
	case BookingStatusConfirmed:
		return next == BookingStatusCompleted || next == BookingStatusCanceled
	default:
		return false
	}
}

type Booking struct {
	ID             string        `bson:"_id,omitempty"`
	ClinicID       string        `bson:"clinic_id"`
	ProfessionalID *string       `bson:"professional_id,omitempty"`
	PatientName    string        `bson:"patient_name"`
	PatientPhone   string        `bson:"patient_phone,omitempty"`
	StartAt        time.Time     `bson:"start_at"`
	Status         BookingStatus `bson:"status"`
	Notes          string        `bson:"notes,omitempty"`
	CreatedAt      time.Time     `bson:"created_at"`
	UpdatedAt      time.Time     `bson:"updated_at"`
}

func (b Booking) ConvertIntoResponse() responses.Booking {
	return responses.Booking{
		ID:             b.ID,
		ClinicID:       b.ClinicID,
		ProfessionalID: b.ProfessionalID,
		PatientName:    b.PatientName,
		PatientPhone:   b.PatientPhone,
		StartAt:        b.StartAt,
		Status:         string(b.Status),
		Notes:          b.Notes,
	}
}
