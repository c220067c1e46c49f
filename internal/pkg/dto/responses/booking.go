package responses

import "time"

type Booking struct {
	ID             string    `json:"id"`
	ClinicID       string    `json:"clinic_id"`
	ProfessionalID *string   `json:"professional_id,omitempty"`
	PatientName    string    `json:"patient_name"`
	PatientPhone   string    `json:"patient_phone,omitempty"`
	StartAt        time.Time `json:"start_at"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes,omitempty"`
}
