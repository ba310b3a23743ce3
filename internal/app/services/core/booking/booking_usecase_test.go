package booking

import (
	"context"
	"telecare-service/internal/app/contracts"
	"telecare-service/internal/app/models"
	"telecare-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Insert(ctx context.Context, appointment *models.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) FindBlockingByDoctorWithinRange(ctx context.Context, doctorID string, rangeStart, rangeEnd time.Time) ([]models.Appointment, error) {
	args := m.Called(ctx, doctorID, rangeStart, rangeEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) UpdateStatus(ctx context.Context, appointmentID, status string) error {
	args := m.Called(ctx, appointmentID, status)
	return args.Error(0)
}

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) ListByDoctor(ctx context.Context, doctorID string) ([]models.ScheduleBlock, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ScheduleBlock), args.Error(1)
}

func (m *MockScheduleRepository) ReplaceForDoctor(ctx context.Context, doctorID string, blocks []models.ScheduleBlock) error {
	args := m.Called(ctx, doctorID, blocks)
	return args.Error(0)
}

func (m *MockScheduleRepository) ListDoctorIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockLockerService struct {
	mock.Mock
}

func (m *MockLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	args := m.Called(ctx, key, lockValue)
	return args.Error(0)
}

type MockAvailabilityUsecase struct {
	mock.Mock
}

func (m *MockAvailabilityUsecase) GetDoctorAvailability(ctx context.Context, doctorID, rangeStart, rangeEnd string) ([]contracts.DayAvailability, error) {
	args := m.Called(ctx, doctorID, rangeStart, rangeEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]contracts.DayAvailability), args.Error(1)
}

func (m *MockAvailabilityUsecase) InvalidateDoctorCache(ctx context.Context, doctorID string) error {
	args := m.Called(ctx, doctorID)
	return args.Error(0)
}

type MockBookingEventPublisher struct {
	mock.Mock
}

func (m *MockBookingEventPublisher) PublishBookingCommitted(ctx context.Context, appointment *models.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

type bookingTestEnv struct {
	appointmentRepo *MockAppointmentRepository
	scheduleRepo    *MockScheduleRepository
	locker          *MockLockerService
	availability    *MockAvailabilityUsecase
	publisher       *MockBookingEventPublisher
	usecase         *bookingUsecase
}

func newBookingTestEnv() *bookingTestEnv {
	env := &bookingTestEnv{
		appointmentRepo: new(MockAppointmentRepository),
		scheduleRepo:    new(MockScheduleRepository),
		locker:          new(MockLockerService),
		availability:    new(MockAvailabilityUsecase),
		publisher:       new(MockBookingEventPublisher),
	}
	env.usecase = &bookingUsecase{
		AppointmentRepository: env.appointmentRepo,
		ScheduleRepository:    env.scheduleRepo,
		LockerService:         env.locker,
		AvailabilityUsecase:   env.availability,
		EventPublisher:        env.publisher,
		Log:                   zap.NewNop(),
		Location:              time.UTC,
		LockTTL:               15 * time.Second,
		now:                   time.Now,
	}
	return env
}

func mondayBlocks() []models.ScheduleBlock {
	return []models.ScheduleBlock{
		{DoctorID: "doc-1", DayOfWeek: 1, StartOfDay: "09:00", EndOfDay: "17:00", SlotMinutes: 30},
	}
}

func TestBookAppointment(t *testing.T) {
	ctx := context.Background()
	input := contracts.BookAppointmentInput{
		DoctorID:  "doc-1",
		PatientID: "pat-1",
		Start:     monday(10, 0),
		End:       monday(10, 30),
	}

	t.Run("free slot commits", func(t *testing.T) {
		env := newBookingTestEnv()
		env.locker.On("TryLock", mock.Anything, "booking:doctor:doc-1", mock.Anything).Return(true, "token", nil)
		env.locker.On("Unlock", mock.Anything, "booking:doctor:doc-1", "token").Return(nil)
		env.appointmentRepo.On("FindBlockingByDoctorWithinRange", mock.Anything, "doc-1", input.Start, input.End).
			Return([]models.Appointment{}, nil)
		env.scheduleRepo.On("ListByDoctor", mock.Anything, "doc-1").Return(mondayBlocks(), nil)
		env.appointmentRepo.On("Insert", mock.Anything, mock.AnythingOfType("*models.Appointment")).Return(nil)
		env.availability.On("InvalidateDoctorCache", mock.Anything, "doc-1").Return(nil)
		env.publisher.On("PublishBookingCommitted", mock.Anything, mock.AnythingOfType("*models.Appointment")).Return(nil)

		result, err := env.usecase.BookAppointment(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, contracts.BookingOutcomeCommitted, result.Outcome)
		assert.NotEmpty(t, result.Appointment.ID)
		assert.Equal(t, models.AppointmentStatusScheduled, result.Appointment.Status)
		env.appointmentRepo.AssertExpectations(t)
		env.locker.AssertExpectations(t)
	})

	t.Run("overlap is rejected without insert", func(t *testing.T) {
		env := newBookingTestEnv()
		env.locker.On("TryLock", mock.Anything, mock.Anything, mock.Anything).Return(true, "token", nil)
		env.locker.On("Unlock", mock.Anything, mock.Anything, "token").Return(nil)
		env.appointmentRepo.On("FindBlockingByDoctorWithinRange", mock.Anything, "doc-1", input.Start, input.End).
			Return([]models.Appointment{{
				ID:        "appt-1",
				DoctorID:  "doc-1",
				PatientID: "pat-2",
				Start:     monday(10, 15),
				End:       monday(10, 45),
				Status:    models.AppointmentStatusScheduled,
			}}, nil)

		result, err := env.usecase.BookAppointment(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, contracts.BookingOutcomeOverlap, result.Outcome)
		assert.Equal(t, "appt-1", result.ConflictingWith.ID)
		env.appointmentRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("retry of an identical booking is idempotent", func(t *testing.T) {
		env := newBookingTestEnv()
		prior := models.Appointment{
			ID:        "appt-1",
			DoctorID:  "doc-1",
			PatientID: "pat-1",
			Start:     input.Start,
			End:       input.End,
			Status:    models.AppointmentStatusScheduled,
		}
		env.locker.On("TryLock", mock.Anything, mock.Anything, mock.Anything).Return(true, "token", nil)
		env.locker.On("Unlock", mock.Anything, mock.Anything, "token").Return(nil)
		env.appointmentRepo.On("FindBlockingByDoctorWithinRange", mock.Anything, "doc-1", input.Start, input.End).
			Return([]models.Appointment{prior}, nil)

		result, err := env.usecase.BookAppointment(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, contracts.BookingOutcomeDuplicate, result.Outcome)
		assert.Equal(t, "appt-1", result.Appointment.ID)
		env.appointmentRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("interval outside working hours is rejected", func(t *testing.T) {
		env := newBookingTestEnv()
		env.locker.On("TryLock", mock.Anything, mock.Anything, mock.Anything).Return(true, "token", nil)
		env.locker.On("Unlock", mock.Anything, mock.Anything, "token").Return(nil)
		env.appointmentRepo.On("FindBlockingByDoctorWithinRange", mock.Anything, "doc-1", mock.Anything, mock.Anything).
			Return([]models.Appointment{}, nil)
		env.scheduleRepo.On("ListByDoctor", mock.Anything, "doc-1").Return(mondayBlocks(), nil)

		night := contracts.BookAppointmentInput{
			DoctorID:  "doc-1",
			PatientID: "pat-1",
			Start:     monday(22, 0),
			End:       monday(22, 30),
		}
		result, err := env.usecase.BookAppointment(ctx, night)
		assert.NoError(t, err)
		assert.Equal(t, contracts.BookingOutcomeOutsideWorkingHours, result.Outcome)
		env.appointmentRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("doctor without schedule accepts any time", func(t *testing.T) {
		env := newBookingTestEnv()
		env.locker.On("TryLock", mock.Anything, mock.Anything, mock.Anything).Return(true, "token", nil)
		env.locker.On("Unlock", mock.Anything, mock.Anything, "token").Return(nil)
		env.appointmentRepo.On("FindBlockingByDoctorWithinRange", mock.Anything, "doc-1", mock.Anything, mock.Anything).
			Return([]models.Appointment{}, nil)
		env.scheduleRepo.On("ListByDoctor", mock.Anything, "doc-1").Return([]models.ScheduleBlock{}, nil)
		env.appointmentRepo.On("Insert", mock.Anything, mock.AnythingOfType("*models.Appointment")).Return(nil)
		env.availability.On("InvalidateDoctorCache", mock.Anything, "doc-1").Return(nil)
		env.publisher.On("PublishBookingCommitted", mock.Anything, mock.AnythingOfType("*models.Appointment")).Return(nil)

		night := contracts.BookAppointmentInput{
			DoctorID:  "doc-1",
			PatientID: "pat-1",
			Start:     monday(3, 0),
			End:       monday(3, 30),
		}
		result, err := env.usecase.BookAppointment(ctx, night)
		assert.NoError(t, err)
		assert.Equal(t, contracts.BookingOutcomeCommitted, result.Outcome)
	})

	t.Run("contended lock surfaces a retryable error", func(t *testing.T) {
		env := newBookingTestEnv()
		env.locker.On("TryLock", mock.Anything, mock.Anything, mock.Anything).Return(false, "", nil)

		_, err := env.usecase.BookAppointment(ctx, input)
		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 503, customErr.StatusCode)
		env.locker.AssertNumberOfCalls(t, "TryLock", lockAttempts)
		env.appointmentRepo.AssertNotCalled(t, "FindBlockingByDoctorWithinRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lock released after a rejection", func(t *testing.T) {
		env := newBookingTestEnv()
		env.locker.On("TryLock", mock.Anything, mock.Anything, mock.Anything).Return(true, "token", nil)
		env.locker.On("Unlock", mock.Anything, "booking:doctor:doc-1", "token").Return(nil)
		env.appointmentRepo.On("FindBlockingByDoctorWithinRange", mock.Anything, "doc-1", mock.Anything, mock.Anything).
			Return([]models.Appointment{{
				Start:  monday(10, 0),
				End:    monday(10, 30),
				Status: models.AppointmentStatusScheduled,
			}}, nil)

		_, err := env.usecase.BookAppointment(ctx, input)
		assert.NoError(t, err)
		env.locker.AssertCalled(t, "Unlock", mock.Anything, "booking:doctor:doc-1", "token")
	})

	t.Run("publish failure does not undo the commit", func(t *testing.T) {
		env := newBookingTestEnv()
		env.locker.On("TryLock", mock.Anything, mock.Anything, mock.Anything).Return(true, "token", nil)
		env.locker.On("Unlock", mock.Anything, mock.Anything, "token").Return(nil)
		env.appointmentRepo.On("FindBlockingByDoctorWithinRange", mock.Anything, "doc-1", mock.Anything, mock.Anything).
			Return([]models.Appointment{}, nil)
		env.scheduleRepo.On("ListByDoctor", mock.Anything, "doc-1").Return(mondayBlocks(), nil)
		env.appointmentRepo.On("Insert", mock.Anything, mock.AnythingOfType("*models.Appointment")).Return(nil)
		env.availability.On("InvalidateDoctorCache", mock.Anything, "doc-1").Return(nil)
		env.publisher.On("PublishBookingCommitted", mock.Anything, mock.Anything).
			Return(exceptions.ErrQueuePublish(nil))

		result, err := env.usecase.BookAppointment(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, contracts.BookingOutcomeCommitted, result.Outcome)
	})

	t.Run("inverted interval fails before locking", func(t *testing.T) {
		env := newBookingTestEnv()

		bad := contracts.BookAppointmentInput{
			DoctorID:  "doc-1",
			PatientID: "pat-1",
			Start:     monday(11, 0),
			End:       monday(10, 0),
		}
		_, err := env.usecase.BookAppointment(ctx, bad)
		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 400, customErr.StatusCode)
		env.locker.AssertNotCalled(t, "TryLock", mock.Anything, mock.Anything, mock.Anything)
	})
}
