package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agendaclin-service/internal/app/config"
	"agendaclin-service/internal/app/delivery/http/middlewares"
	"agendaclin-service/internal/app/delivery/http/routers"
	"agendaclin-service/internal/app/drivers/database"
	"agendaclin-service/internal/app/drivers/logger"
	"agendaclin-service/internal/app/drivers/messaging"
	"agendaclin-service/internal/app/services/core/availability"
	"agendaclin-service/internal/app/services/core/blockedperiods"
	"agendaclin-service/internal/app/services/core/bookings"
	"agendaclin-service/internal/app/services/core/clinics"
	"agendaclin-service/internal/app/services/core/workinghours"
	"agendaclin-service/internal/app/services/shared/events"
	"agendaclin-service/internal/app/services/shared/locker"
	"agendaclin-service/internal/app/services/shared/redis"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	processLog := logger.NewLogrusLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		processLog.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	processLog.Printf("Starting agendaclin-service %s (%s)", internalConfig.App.Version, internalConfig.App.Env)

	mongoClient := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitConn := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoClient:    mongoClient,
		Redis:          redisClient,
		Logger:         zapLogger,
		RabbitMQ:       rabbitConn,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	bootstrapingTheApp(&bootstrap, processLog)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			processLog.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	processLog.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		processLog.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		processLog.Printf("Error closing resources: %v", err)
	}

	processLog.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap, processLog *logrus.Logger) {
	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, bootstrap.Logger)
	eventPublisher, err := events.NewPublisher(bootstrap.RabbitMQ, bootstrap.DriverConfig.RabbitMQ.Exchange, bootstrap.Logger)
	if err != nil {
		processLog.Fatalf("Error setting up event publisher: %v", err)
	}

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	// Clinic
	clinicMongoRepository := clinics.NewClinicMongoRepository(bootstrap.MongoClient, bootstrap.DriverConfig.MongoDB.DbName)
	clinicUsecase := clinics.NewClinicUsecase(clinicMongoRepository, bootstrap.InternalConfig, bootstrap.Logger)
	clinicController := clinics.NewClinicController(bootstrap.Logger, clinicUsecase)

	// Working hours
	workingHoursMongoRepository := workinghours.NewWorkingHoursMongoRepository(bootstrap.MongoClient, bootstrap.DriverConfig.MongoDB.DbName)
	workingHoursProvider := workinghours.NewWorkingHoursProvider(workingHoursMongoRepository)
	workingHoursUsecase := workinghours.NewWorkingHoursUsecase(workingHoursMongoRepository, clinicMongoRepository, bootstrap.InternalConfig, bootstrap.Logger)
	workingHoursController := workinghours.NewWorkingHoursController(bootstrap.Logger, workingHoursUsecase)

	// Blocked periods
	blockedPeriodMongoRepository := blockedperiods.NewBlockedPeriodMongoRepository(bootstrap.MongoClient, bootstrap.DriverConfig.MongoDB.DbName)
	blockedPeriodProvider := blockedperiods.NewBlockedPeriodProvider(blockedPeriodMongoRepository)
	blockedPeriodUsecase := blockedperiods.NewBlockedPeriodUsecase(blockedPeriodMongoRepository, clinicMongoRepository, bootstrap.Logger)
	blockedPeriodController := blockedperiods.NewBlockedPeriodController(bootstrap.Logger, blockedPeriodUsecase)

	// Bookings
	bookingMongoRepository := bookings.NewBookingMongoRepository(bootstrap.MongoClient, bootstrap.DriverConfig.MongoDB.DbName)
	indexCtx, cancelIndexCtx := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelIndexCtx()
	if err := bookingMongoRepository.EnsureIndexes(indexCtx); err != nil {
		processLog.Fatalf("Error ensuring booking indexes: %v", err)
	}
	bookingLookup := bookings.NewBookingLookup(bookingMongoRepository, clinicMongoRepository, bootstrap.InternalConfig)

	// Availability
	availabilityUsecase := availability.NewAvailabilityUsecase(
		workingHoursProvider,
		blockedPeriodProvider,
		bookingLookup,
		clinicMongoRepository,
		redisRepository,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	availabilityController := availability.NewAvailabilityController(bootstrap.Logger, availabilityUsecase)

	bookingUsecase := bookings.NewBookingUsecase(
		bookingMongoRepository,
		clinicMongoRepository,
		availabilityUsecase,
		lockService,
		eventPublisher,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	bookingController := bookings.NewBookingController(bootstrap.Logger, bookingUsecase)

	// Background expiry worker
	expiryWorker := bookings.NewExpiryWorker(bootstrap.Logger, bootstrap.InternalConfig, lockService, bookingUsecase)
	expiryWorker.Start(context.Background())
	bootstrap.WorkerStop = expiryWorker.Stop

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		availabilityController,
		clinicController,
		workingHoursController,
		blockedPeriodController,
		bookingController,
	)
}
