package requests

// WorkingHoursRuleInput is one window inside a weekday replacement.
type WorkingHoursRuleInput struct {
	StartTime           string `json:"start_time" validate:"required,hhmm"`
	EndTime             string `json:"end_time" validate:"required,hhmm"`
	SlotDurationMinutes int    `json:"slot_duration_minutes" validate:"required,gt=0,lte=480"`
	Active              bool   `json:"active"`
}

// ReplaceWeekdayWorkingHours replaces every rule a clinic has on one weekday.
type ReplaceWeekdayWorkingHours struct {
	Weekday int                     `json:"weekday" validate:"weekday"`
	Rules   []WorkingHoursRuleInput `json:"rules" validate:"dive"`
}

type CreateBlockedPeriod struct {
	ProfessionalID string `json:"professional_id,omitempty"`
	StartDate      string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate        string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason         string `json:"reason,omitempty" validate:"omitempty,max=300"`
}
