package routers

import (
	"telecare-service/internal/app/delivery/http/controllers"
	"telecare-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, bookingLimiter *middlewares.RateLimiter, bookingController *controllers.BookingController, appointmentController *controllers.AppointmentController) {
	router.With(bookingLimiter.Limit).Post("/", bookingController.CreateAppointment)
	router.Patch("/{appointmentID}/status", appointmentController.UpdateStatus)
}
