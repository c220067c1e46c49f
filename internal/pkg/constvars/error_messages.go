package constvars

// Client-facing error messages.
const (
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "Cannot process your request, please check your input"
	ErrClientNotAuthorized                 = "You are not authorized to perform this action"
	ErrClientServerLongRespond             = "Server took too long to respond, please try again"
	ErrClientAvailabilityLookupFailed      = "Could not check availability right now, please try again"
	ErrClientInvalidDate                   = "Date must be a valid calendar date in YYYY-MM-DD format"
	ErrClientProfessionalNotInClinic       = "The selected professional does not belong to this clinic"
	ErrClientClinicNotFound                = "Clinic not found"
	ErrClientBookingNotFound               = "Booking not found"
	ErrClientBlockedPeriodNotFound         = "Blocked period not found"
	ErrClientSlotNoLongerAvailable         = "The selected slot is no longer available, please pick another time"
	ErrClientWorkingHoursOverlap           = "Working hours for a weekday must not overlap"
	ErrClientWorkingHoursAlreadySet        = "This clinic already has working hours configured"
	ErrClientInvalidStatusTransition       = "The booking cannot change to the requested status"
)

// Developer-facing error messages.
const (
	ErrDevValidationFailed           = "Request validation failed"
	ErrDevInvalidRequestPayload      = "Invalid request payload"
	ErrDevInvalidInput               = "Invalid input"
	ErrDevCannotParseJSON            = "Cannot parse JSON payload"
	ErrDevCannotParseDate            = "Cannot parse calendar date"
	ErrDevCannotParseClock           = "Cannot parse wall-clock time"
	ErrDevCannotMarshalJSON          = "Cannot marshal value to JSON"
	ErrDevServerDeadlineExceeded     = "Server deadline exceeded"
	ErrDevURLParamIDValidationFailed = "URL parameter %s failed validation"

	ErrDevDBFailedToFindDocument     = "Database failed to find document"
	ErrDevDBFailedToInsertDocument   = "Database failed to insert document"
	ErrDevDBFailedToUpdateDocument   = "Database failed to update document"
	ErrDevDBFailedToDeleteDocument   = "Database failed to delete document"
	ErrDevDBFailedToIterateDocuments = "Database failed to iterate documents"
	ErrDevDBDuplicateKey             = "Database rejected insert due to duplicate key"

	ErrDevRedisSet       = "Redis failed to set key"
	ErrDevRedisGet       = "Redis failed to get key %s"
	ErrDevRedisDelete    = "Redis failed to delete key"
	ErrDevRedisSetNX     = "Redis failed to set key with NX"
	ErrDevRedisUnlock    = "Redis failed to release lock"
	ErrDevRabbitMQPublish = "RabbitMQ failed to publish event"

	ErrDevWorkingHoursProvider  = "Working hours provider failed"
	ErrDevBlockedPeriodProvider = "Blocked period provider failed"
	ErrDevBookingLookup         = "Booking lookup failed"
)
