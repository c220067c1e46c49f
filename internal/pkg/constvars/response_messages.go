package constvars

const (
	GetAvailabilitySuccessMessage    = "Successfully retrieved available slots"
	GetClinicSuccessMessage          = "Successfully retrieved clinic data"
	GetProfessionalsSuccessMessage   = "Successfully retrieved professionals"
	GetWorkingHoursSuccessMessage    = "Successfully retrieved working hours"
	UpdateWorkingHoursSuccessMessage = "Successfully updated working hours"
	SeedWorkingHoursSuccessMessage   = "Successfully seeded default working hours"
	GetBlockedPeriodsSuccessMessage  = "Successfully retrieved blocked periods"
	CreateBlockedPeriodSuccess       = "Successfully created blocked period"
	DeleteBlockedPeriodSuccess       = "Successfully deleted blocked period"
	CreateBookingSuccessMessage      = "Successfully created booking"
	GetBookingsSuccessMessage        = "Successfully retrieved bookings"
	UpdateBookingSuccessMessage      = "Successfully updated booking"

	ResponseUnknown = "unknown"
)
