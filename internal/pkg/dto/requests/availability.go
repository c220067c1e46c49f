package requests

// GetAvailability carries the query for one availability computation.
// Date is a calendar date (YYYY-MM-DD); ProfessionalID is optional and empty
// means "any professional".
type GetAvailability struct {
	ClinicID       string `json:"clinic_id" validate:"required"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	ProfessionalID string `json:"professional_id,omitempty"`
}
