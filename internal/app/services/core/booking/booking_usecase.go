package booking

import (
	"context"
	"fmt"
	"sync"
	"telecare-service/internal/app/contracts"
	"telecare-service/internal/app/models"
	"telecare-service/internal/pkg/constvars"
	"telecare-service/internal/pkg/exceptions"
	"telecare-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

const (
	lockAttempts      = 3
	lockRetryInterval = 100 * time.Millisecond
)

var (
	bookingUsecaseInstance contracts.BookingUsecase
	onceBookingUsecase     sync.Once
)

type bookingUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	ScheduleRepository    contracts.ScheduleRepository
	LockerService         contracts.LockerService
	AvailabilityUsecase   contracts.AvailabilityUsecase
	EventPublisher        contracts.BookingEventPublisher
	Log                   *zap.Logger
	Location              *time.Location
	LockTTL               time.Duration

	now func() time.Time
}

func NewBookingUsecase(
	appointmentRepository contracts.AppointmentRepository,
	scheduleRepository contracts.ScheduleRepository,
	lockerService contracts.LockerService,
	availabilityUsecase contracts.AvailabilityUsecase,
	eventPublisher contracts.BookingEventPublisher,
	logger *zap.Logger,
	location *time.Location,
	lockTTL time.Duration,
) contracts.BookingUsecase {
	onceBookingUsecase.Do(func() {
		bookingUsecaseInstance = &bookingUsecase{
			AppointmentRepository: appointmentRepository,
			ScheduleRepository:    scheduleRepository,
			LockerService:         lockerService,
			AvailabilityUsecase:   availabilityUsecase,
			EventPublisher:        eventPublisher,
			Log:                   logger,
			Location:              location,
			LockTTL:               lockTTL,
			now:                   time.Now,
		}
	})
	return bookingUsecaseInstance
}

// BookAppointment admits a booking request. The conflict check and the insert
// run under a per-doctor lock, so two requests for the same doctor can never
// both pass the check and both commit.
func (uc *bookingUsecase) BookAppointment(ctx context.Context, input contracts.BookAppointmentInput) (*contracts.BookingResult, error) {
	if !input.Start.Before(input.End) {
		return nil, exceptions.ErrInvalidAppointmentInterval(
			fmt.Errorf("start %s is not before end %s",
				input.Start.Format(time.RFC3339), input.End.Format(time.RFC3339)),
		)
	}

	lockKey := doctorLockKey(input.DoctorID)
	lockValue, err := uc.acquireLock(ctx, lockKey)
	if err != nil {
		return nil, err
	}
	defer func() {
		if unlockErr := uc.LockerService.Unlock(ctx, lockKey, lockValue); unlockErr != nil {
			uc.Log.Warn("bookingUsecase.BookAppointment error releasing doctor lock",
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(unlockErr),
			)
		}
	}()

	existing, err := uc.AppointmentRepository.FindBlockingByDoctorWithinRange(ctx, input.DoctorID, input.Start, input.End)
	if err != nil {
		return nil, err
	}

	report, err := DetectConflict(input.PatientID, input.Start, input.End, existing)
	if err != nil {
		return nil, err
	}
	switch report.Kind {
	case ExactDuplicate:
		return &contracts.BookingResult{
			Outcome:     contracts.BookingOutcomeDuplicate,
			Appointment: report.ConflictingWith,
		}, nil
	case Overlap:
		return &contracts.BookingResult{
			Outcome:         contracts.BookingOutcomeOverlap,
			ConflictingWith: report.ConflictingWith,
		}, nil
	}

	blocks, err := uc.ScheduleRepository.ListByDoctor(ctx, input.DoctorID)
	if err != nil {
		return nil, err
	}
	admissible, err := WithinWorkingHours(blocks, input.Start, input.End, uc.Location)
	if err != nil {
		return nil, err
	}
	if !admissible {
		return &contracts.BookingResult{
			Outcome: contracts.BookingOutcomeOutsideWorkingHours,
		}, nil
	}

	now := uc.now().UTC()
	appointment := &models.Appointment{
		ID:        utils.GenerateAppointmentID(),
		DoctorID:  input.DoctorID,
		PatientID: input.PatientID,
		Start:     input.Start,
		End:       input.End,
		Status:    models.AppointmentStatusScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.AppointmentRepository.Insert(ctx, appointment); err != nil {
		return nil, err
	}

	// The commit already happened; cache invalidation and the event are
	// best effort and must not fail the booking.
	if err := uc.AvailabilityUsecase.InvalidateDoctorCache(ctx, input.DoctorID); err != nil {
		uc.Log.Warn("bookingUsecase.BookAppointment error invalidating availability cache",
			zap.String(constvars.LoggingDoctorIDKey, input.DoctorID),
			zap.Error(err),
		)
	}
	if uc.EventPublisher != nil {
		if err := uc.EventPublisher.PublishBookingCommitted(ctx, appointment); err != nil {
			uc.Log.Warn("bookingUsecase.BookAppointment error publishing booking event",
				zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
				zap.Error(err),
			)
		}
	}

	uc.Log.Info("bookingUsecase.BookAppointment committed",
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingDoctorIDKey, input.DoctorID),
		zap.String(constvars.LoggingPatientIDKey, input.PatientID),
	)
	return &contracts.BookingResult{
		Outcome:     contracts.BookingOutcomeCommitted,
		Appointment: appointment,
	}, nil
}

func (uc *bookingUsecase) acquireLock(ctx context.Context, key string) (string, error) {
	for attempt := 1; attempt <= lockAttempts; attempt++ {
		acquired, lockValue, err := uc.LockerService.TryLock(ctx, key, uc.LockTTL)
		if err != nil {
			return "", err
		}
		if acquired {
			return lockValue, nil
		}
		if attempt < lockAttempts {
			select {
			case <-ctx.Done():
				return "", exceptions.ErrServerDeadlineExceeded(ctx.Err())
			case <-time.After(lockRetryInterval):
			}
		}
	}
	return "", exceptions.ErrBookingLockContended(
		fmt.Errorf("lock %s still held after %d attempts", key, lockAttempts),
	)
}

func doctorLockKey(doctorID string) string {
	return fmt.Sprintf("booking:doctor:%s", doctorID)
}
