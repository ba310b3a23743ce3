package appointments

import (
	"context"
	"fmt"
	"sync"
	"telecare-service/internal/app/contracts"
	"telecare-service/internal/app/models"
	"telecare-service/internal/pkg/constvars"
	"telecare-service/internal/pkg/exceptions"
	"time"

	"go.uber.org/zap"
)

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	AvailabilityUsecase   contracts.AvailabilityUsecase
	Log                   *zap.Logger
}

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	availabilityUsecase contracts.AvailabilityUsecase,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		appointmentUsecaseInstance = &appointmentUsecase{
			AppointmentRepository: appointmentRepository,
			AvailabilityUsecase:   availabilityUsecase,
			Log:                   logger,
		}
	})
	return appointmentUsecaseInstance
}

func (uc *appointmentUsecase) FindByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	appointments, err := uc.AppointmentRepository.FindByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}
	return appointments, nil
}

// UpdateStatus applies a lifecycle transition. Cancelling frees the interval,
// so the doctor's cached availability is invalidated on that path.
func (uc *appointmentUsecase) UpdateStatus(ctx context.Context, appointmentID, status string) (*models.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(fmt.Errorf("appointment %s not found", appointmentID))
	}

	if !models.IsValidStatusTransition(appointment.Status, status) {
		return nil, exceptions.ErrInvalidStatusTransition(
			fmt.Errorf("cannot transition from %s to %s", appointment.Status, status),
		)
	}

	if err := uc.AppointmentRepository.UpdateStatus(ctx, appointmentID, status); err != nil {
		return nil, err
	}
	appointment.Status = status
	appointment.UpdatedAt = time.Now().UTC()

	if status == models.AppointmentStatusCancelled {
		if err := uc.AvailabilityUsecase.InvalidateDoctorCache(ctx, appointment.DoctorID); err != nil {
			uc.Log.Warn("appointmentUsecase.UpdateStatus error invalidating availability cache",
				zap.String(constvars.LoggingDoctorIDKey, appointment.DoctorID),
				zap.Error(err),
			)
		}
	}

	return appointment, nil
}
