package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"telecare-service/internal/app/config"
	"telecare-service/internal/app/delivery/http/controllers"
	"telecare-service/internal/app/delivery/http/middlewares"
	"telecare-service/internal/app/delivery/http/routers"
	"telecare-service/internal/app/drivers/database"
	"telecare-service/internal/app/drivers/logger"
	"telecare-service/internal/app/drivers/messaging"
	"telecare-service/internal/app/services/core/appointments"
	"telecare-service/internal/app/services/core/availability"
	"telecare-service/internal/app/services/core/booking"
	"telecare-service/internal/app/services/core/schedules"
	"telecare-service/internal/app/services/shared/bookingevents"
	"telecare-service/internal/app/services/shared/locker"
	"telecare-service/internal/app/services/shared/redis"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	logger.InitLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		logrus.Fatalf("Error loading timezone %s: %v", internalConfig.App.Timezone, err)
	}

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}
	bootstrapTheApp(&bootstrap, location)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		logrus.Infof("Server listening on %s", internalConfig.App.Port)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests to finish..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Error shutting down drivers: %v", err)
	}

	logrus.Println("Server exiting")
}

func bootstrapTheApp(bootstrap *config.Bootstrap, location *time.Location) {
	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)

	eventPublisher, err := bookingevents.NewService(bootstrap.RabbitMQ, bootstrap.Logger, bootstrap.InternalConfig.App.BookingEventsQueue)
	if err != nil {
		logrus.Fatalf("Error initializing booking events publisher: %v", err)
	}

	// Middlewares
	appMiddlewares := &middlewares.Middlewares{
		Log:            bootstrap.Logger,
		InternalConfig: bootstrap.InternalConfig,
	}

	// Repositories
	scheduleRepository := schedules.NewScheduleMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)

	// Availability
	availabilityUsecase := availability.NewAvailabilityUsecase(
		scheduleRepository,
		appointmentRepository,
		redisRepository,
		bootstrap.Logger,
		location,
		time.Duration(bootstrap.InternalConfig.App.AvailabilityCacheTTLInSecs)*time.Second,
	)
	availabilityController := controllers.NewAvailabilityController(bootstrap.Logger, bootstrap.InternalConfig, availabilityUsecase)

	// Booking
	bookingUsecase := booking.NewBookingUsecase(
		appointmentRepository,
		scheduleRepository,
		lockerService,
		availabilityUsecase,
		eventPublisher,
		bootstrap.Logger,
		location,
		time.Duration(bootstrap.InternalConfig.App.BookingLockTTLInSeconds)*time.Second,
	)
	bookingController := controllers.NewBookingController(bootstrap.Logger, bootstrap.InternalConfig, bookingUsecase)

	// Schedule management
	scheduleUsecase := schedules.NewScheduleUsecase(scheduleRepository, availabilityUsecase, bootstrap.Logger)
	scheduleController := controllers.NewScheduleController(bootstrap.Logger, bootstrap.InternalConfig, scheduleUsecase)

	// Appointment lifecycle
	appointmentUsecase := appointments.NewAppointmentUsecase(appointmentRepository, availabilityUsecase, bootstrap.Logger)
	appointmentController := controllers.NewAppointmentController(bootstrap.Logger, bootstrap.InternalConfig, appointmentUsecase)

	// Cache warmer
	warmer := availability.NewWorker(bootstrap.Logger, bootstrap.InternalConfig, lockerService, scheduleRepository, availabilityUsecase, location)
	warmer.Start(context.Background())
	bootstrap.WorkerStop = warmer.Stop

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		appMiddlewares,
		availabilityController,
		bookingController,
		scheduleController,
		appointmentController,
	)
}
