package models

import (
	"agendaclin-service/internal/pkg/dto/responses"
)

// BlockedPeriod is an explicit closure overriding working hours for an
// inclusive date-only range. A nil ProfessionalID applies to all professionals.
type BlockedPeriod struct {
	ID             string  `bson:"_id,omitempty"`
	ClinicID       string  `bson:"clinic_id"`
	ProfessionalID *string `bson:"professional_id,omitempty"`
	StartDate      string  `bson:"start_date"`
	EndDate        string  `bson:"end_date"`
	Reason         string  `bson:"reason,omitempty"`
}

// ContainsDate reports whether the ISO date falls within [StartDate, EndDate].
// Lexicographic comparison is exact for YYYY-MM-DD strings.
func (b BlockedPeriod) ContainsDate(date string) bool {
	return b.StartDate <= date && date <= b.EndDate
}

// AppliesTo reports whether the block affects the requested professional.
// Global blocks apply to every query; professional-specific blocks apply only
// when that same professional is requested, so they never leak into an
// "any professional" lookup.
func (b BlockedPeriod) AppliesTo(professionalID string) bool {
	if b.ProfessionalID == nil {
		return true
	}
	return professionalID != "" && *b.ProfessionalID == professionalID
}

func (b BlockedPeriod) ConvertIntoResponse() responses.BlockedPeriod {
	return responses.BlockedPeriod{
		ID:             b.ID,
		ProfessionalID: b.ProfessionalID,
		StartDate:      b.StartDate,
		EndDate:        b.EndDate,
		Reason:         b.Reason,
	}
}
