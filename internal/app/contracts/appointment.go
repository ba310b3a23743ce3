package contracts

import (
	"context"
	"telecare-service/internal/app/models"
	"time"
)

// AppointmentRepository is the appointment store. Reads exclude cancelled
// appointments, matching the rule that only blocking appointments take part
// in conflict and availability checks.
type AppointmentRepository interface {
	Insert(ctx context.Context, appointment *models.Appointment) error
	// FindBlockingByDoctorWithinRange returns non-cancelled appointments of
	// the doctor whose half-open interval intersects [rangeStart, rangeEnd).
	FindBlockingByDoctorWithinRange(ctx context.Context, doctorID string, rangeStart, rangeEnd time.Time) ([]models.Appointment, error)
	FindByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, appointmentID, status string) error
}

type AppointmentUsecase interface {
	FindByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, appointmentID, status string) (*models.Appointment, error)
}
