package schedules

import (
	"context"
	"sync"
	"telecare-service/internal/app/contracts"
	"telecare-service/internal/app/models"
	"telecare-service/internal/app/services/core/availability"
	"telecare-service/internal/pkg/constvars"
	"telecare-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

var (
	scheduleUsecaseInstance contracts.ScheduleUsecase
	onceScheduleUsecase     sync.Once
)

type scheduleUsecase struct {
	ScheduleRepository  contracts.ScheduleRepository
	AvailabilityUsecase contracts.AvailabilityUsecase
	Log                 *zap.Logger
}

func NewScheduleUsecase(
	scheduleRepository contracts.ScheduleRepository,
	availabilityUsecase contracts.AvailabilityUsecase,
	logger *zap.Logger,
) contracts.ScheduleUsecase {
	onceScheduleUsecase.Do(func() {
		scheduleUsecaseInstance = &scheduleUsecase{
			ScheduleRepository:  scheduleRepository,
			AvailabilityUsecase: availabilityUsecase,
			Log:                 logger,
		}
	})
	return scheduleUsecaseInstance
}

func (uc *scheduleUsecase) GetDoctorSchedule(ctx context.Context, doctorID string) ([]models.ScheduleBlock, error) {
	blocks, err := uc.ScheduleRepository.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if blocks == nil {
		blocks = []models.ScheduleBlock{}
	}
	return blocks, nil
}

// ReplaceDoctorSchedule validates and stores the full weekly schedule, then
// invalidates the doctor's cached availability so reads immediately reflect
// the new working hours.
func (uc *scheduleUsecase) ReplaceDoctorSchedule(ctx context.Context, doctorID string, blocks []models.ScheduleBlock) ([]models.ScheduleBlock, error) {
	if _, err := availability.ConvertBlocksToWeeklyPlan(blocks); err != nil {
		return nil, exceptions.ErrInvalidScheduleBlock(err)
	}

	if err := uc.ScheduleRepository.ReplaceForDoctor(ctx, doctorID, blocks); err != nil {
		return nil, err
	}

	if err := uc.AvailabilityUsecase.InvalidateDoctorCache(ctx, doctorID); err != nil {
		uc.Log.Warn("scheduleUsecase.ReplaceDoctorSchedule error invalidating availability cache",
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
	}

	return uc.GetDoctorSchedule(ctx, doctorID)
}
