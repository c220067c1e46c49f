package constvars

const (
	URLParamClinicID       = "clinic_id"
	URLParamProfessionalID = "professional_id"
	URLParamBookingID      = "booking_id"
	URLParamPeriodID       = "period_id"
)
