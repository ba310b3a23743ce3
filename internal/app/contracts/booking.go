package contracts

import (
	"context"
	"telecare-service/internal/app/models"
	"time"
)

const (
	BookingOutcomeCommitted           = "committed"
	BookingOutcomeDuplicate           = "duplicate"
	BookingOutcomeOverlap             = "overlap"
	BookingOutcomeOutsideWorkingHours = "outside_working_hours"
)

type BookAppointmentInput struct {
	DoctorID  string
	PatientID string
	Start     time.Time
	End       time.Time
}

// BookingResult reports how an admission attempt ended. Business rejections
// (overlap, outside working hours) and idempotent duplicates are values, not
// errors, so callers must handle each explicitly.
type BookingResult struct {
	Outcome string `json:"outcome"`
	// Appointment is the committed record, or the pre-existing record when
	// Outcome is duplicate.
	Appointment *models.Appointment `json:"appointment,omitempty"`
	// ConflictingWith is the first blocking appointment found when Outcome
	// is overlap.
	ConflictingWith *models.Appointment `json:"conflicting_with,omitempty"`
}

type BookingUsecase interface {
	BookAppointment(ctx context.Context, input BookAppointmentInput) (*BookingResult, error)
}
