package constvars

type contextKey string

const (
	CONTEXT_REQUEST_ID_KEY           contextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY contextKey = "is_client_request_id"
)

// Mongo collection names.
const (
	MongoCollectionClinics        = "clinics"
	MongoCollectionProfessionals  = "professionals"
	MongoCollectionWorkingHours   = "working_hours"
	MongoCollectionBlockedPeriods = "blocked_periods"
	MongoCollectionBookings       = "bookings"
)

// Wire formats for calendar dates and wall-clock times.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// RabbitMQ routing keys for booking lifecycle events.
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCanceled  = "booking.canceled"
	EventBookingCompleted = "booking.completed"
	EventBookingExpired   = "booking.expired"
)

const AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
