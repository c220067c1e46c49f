package config

type (
	InternalConfig struct {
		App          App
		Availability Availability
		Booking      Booking
	}

	App struct {
		Env                       string
		Port                      string
		Version                   string
		Address                   string
		Timezone                  string
		EndpointPrefix            string
		ShutdownTimeout           int
		MaxRequests               int
		MaxTimeRequestsPerSeconds int
	}

	// Availability tunes the slot computation path. The fallback schedule is
	// applied only when a clinic has no working-hours rules at all and
	// FallbackEnabled is true; a clinic with any configured weekday keeps its
	// other weekdays closed.
	Availability struct {
		FallbackEnabled              bool
		FallbackStartTimes           []string
		FallbackEndTimes             []string
		FallbackSlotDurationMinutes  int
		FallbackWeekdays             []int
		AggregateAcrossProfessionals bool
		ProviderTimeoutInSeconds     int
		CacheTTLInSeconds            int
	}

	Booking struct {
		DayLockTTLInSeconds       int
		PendingExpiryInMinutes    int
		ExpiryWorkerCronSpec      string
		ExpiryWorkerLockKey       string
		ExpiryWorkerLockTTLInSecs int
		ExpiryBatchSize           int
	}
)
