package models

import (
	"agendaclin-service/internal/pkg/dto/responses"
)

// WorkingHoursRule is one recurring weekly open window for a clinic.
// Weekday is Sunday-first (0-6). StartTime/EndTime are wall-clock HH:MM with
// no date component; the invariant StartTime < EndTime is enforced on write.
type WorkingHoursRule struct {
	ID                  string `bson:"_id,omitempty"`
	ClinicID            string `bson:"clinic_id"`
	Weekday             int    `bson:"weekday"`
	StartTime           string `bson:"start_time"`
	EndTime             string `bson:"end_time"`
	SlotDurationMinutes int    `bson:"slot_duration_minutes"`
	Active              bool   `bson:"active"`
}

func (r WorkingHoursRule) ConvertIntoResponse() responses.WorkingHoursRule {
	return responses.WorkingHoursRule{
		ID:                  r.ID,
		Weekday:             r.Weekday,
		StartTime:           r.StartTime,
		EndTime:             r.EndTime,
		SlotDurationMinutes: r.SlotDurationMinutes,
		Active:              r.Active,
	}
}
