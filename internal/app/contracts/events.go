package contracts

import (
	"context"
	"telecare-service/internal/app/models"
)

// BookingEventPublisher hands committed bookings to downstream consumers
// (reminders, notifications). Publishing failures must not undo a commit.
type BookingEventPublisher interface {
	PublishBookingCommitted(ctx context.Context, appointment *models.Appointment) error
}
