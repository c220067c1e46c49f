package config

import (
	"strconv"
	"strings"

	"agendaclin-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "agendaclin"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
			Exchange: utils.GetEnvString("RABBITMQ_EXCHANGE", "agendaclin.bookings"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                       utils.GetEnvString("APP_ENV", "development"),
			Port:                      utils.GetEnvString("APP_PORT", ":8080"),
			Version:                   utils.GetEnvString("APP_VERSION", "v1.0"),
			Address:                   utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                  utils.GetEnvString("APP_TIMEZONE", "America/Sao_Paulo"),
			EndpointPrefix:            utils.GetEnvString("APP_ENDPOINT_PREFIX", "/v1"),
			ShutdownTimeout:           utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			MaxRequests:               utils.GetEnvInt("APP_MAX_REQUEST", 100),
			MaxTimeRequestsPerSeconds: utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
		},
		Availability: Availability{
			FallbackEnabled:              utils.GetEnvBool("AVAILABILITY_FALLBACK_ENABLED", true),
			FallbackStartTimes:           splitList(utils.GetEnvString("AVAILABILITY_FALLBACK_START_TIMES", "08:00,14:00")),
			FallbackEndTimes:             splitList(utils.GetEnvString("AVAILABILITY_FALLBACK_END_TIMES", "12:00,18:00")),
			FallbackSlotDurationMinutes:  utils.GetEnvInt("AVAILABILITY_FALLBACK_SLOT_DURATION_MINUTES", 30),
			FallbackWeekdays:             splitIntList(utils.GetEnvString("AVAILABILITY_FALLBACK_WEEKDAYS", "1,2,3,4,5")),
			AggregateAcrossProfessionals: utils.GetEnvBool("AVAILABILITY_AGGREGATE_ACROSS_PROFESSIONALS", true),
			ProviderTimeoutInSeconds:     utils.GetEnvInt("AVAILABILITY_PROVIDER_TIMEOUT_IN_SECONDS", 5),
			CacheTTLInSeconds:            utils.GetEnvInt("AVAILABILITY_CACHE_TTL_IN_SECONDS", 30),
		},
		Booking: Booking{
			DayLockTTLInSeconds:       utils.GetEnvInt("BOOKING_DAY_LOCK_TTL_IN_SECONDS", 10),
			PendingExpiryInMinutes:    utils.GetEnvInt("BOOKING_PENDING_EXPIRY_IN_MINUTES", 30),
			ExpiryWorkerCronSpec:      utils.GetEnvString("BOOKING_EXPIRY_WORKER_CRON_SPEC", "*/5 * * * *"),
			ExpiryWorkerLockKey:       utils.GetEnvString("BOOKING_EXPIRY_WORKER_LOCK_KEY", "workers:booking-expiry:leader"),
			ExpiryWorkerLockTTLInSecs: utils.GetEnvInt("BOOKING_EXPIRY_WORKER_LOCK_TTL_IN_SECONDS", 60),
			ExpiryBatchSize:           utils.GetEnvInt("BOOKING_EXPIRY_BATCH_SIZE", 200),
		},
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

func splitIntList(raw string) []int {
	values := make([]int, 0)
	for _, part := range splitList(raw) {
		if parsed, err := strconv.Atoi(part); err == nil {
			values = append(values, parsed)
		}
	}
	return values
}
