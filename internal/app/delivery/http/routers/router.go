package routers

import (
	"fmt"
	"net/http"
	"telecare-service/internal/app/config"
	"telecare-service/internal/app/delivery/http/controllers"
	middlewarespkg "telecare-service/internal/app/delivery/http/middlewares"
	"telecare-service/internal/pkg/constvars"
	"telecare-service/internal/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewarespkg.Middlewares,
	availabilityController *controllers.AvailabilityController,
	bookingController *controllers.BookingController,
	scheduleController *controllers.ScheduleController,
	appointmentController *controllers.AppointmentController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", constvars.HeaderXRequestID},
		ExposedHeaders:   []string{"Link", constvars.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, nil)
	})

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/doctors/{doctorID}", func(r chi.Router) {
				attachAvailabilityRoutes(r, availabilityController)
				attachScheduleRoutes(r, scheduleController)
				r.Get("/appointments", appointmentController.FindByDoctor)
			})

			// Booking writes get a stricter per-IP limiter than the global
			// one; abusive clients are blocked for a minute.
			bookingLimiter := middlewarespkg.NewRateLimiter(internalConfig.App.MaxRequests, time.Second, time.Minute)
			r.Route("/appointments", func(r chi.Router) {
				attachAppointmentRoutes(r, bookingLimiter, bookingController, appointmentController)
			})
		})
	})
}
