package requests

type CreateBooking struct {
	ClinicID       string `json:"clinic_id" validate:"required"`
	ProfessionalID string `json:"professional_id,omitempty"`
	PatientName    string `json:"patient_name" validate:"required,min=2,max=120"`
	PatientPhone   string `json:"patient_phone,omitempty" validate:"omitempty,min=8,max=20"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	Time           string `json:"time" validate:"required,hhmm"`
	Notes          string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type UpdateBookingStatus struct {
	Status string `json:"status" validate:"required,oneof=confirmed canceled completed"`
	Notes  string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type ListBookings struct {
	ClinicID       string `json:"clinic_id" validate:"required"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	ProfessionalID string `json:"professional_id,omitempty"`
}
