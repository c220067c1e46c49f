package responses

type Clinic struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

type Professional struct {
	ID        string `json:"id"`
	ClinicID  string `json:"clinic_id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty,omitempty"`
}

type WorkingHoursRule struct {
	ID                  string `json:"id,omitempty"`
	Weekday             int    `json:"weekday"`
	StartTime           string `json:"start_time"`
	EndTime             string `json:"end_time"`
	SlotDurationMinutes int    `json:"slot_duration_minutes"`
	Active              bool   `json:"active"`
}

type WorkingHoursConfiguration struct {
	Rules        []WorkingHoursRule `json:"rules"`
	UsedFallback bool               `json:"used_fallback"`
}

type BlockedPeriod struct {
	ID             string  `json:"id"`
	ProfessionalID *string `json:"professional_id,omitempty"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	Reason         string  `json:"reason,omitempty"`
}
