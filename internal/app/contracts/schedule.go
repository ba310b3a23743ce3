package contracts

import (
	"context"
	"telecare-service/internal/app/models"
)

// ScheduleRepository is the schedule store. The availability and booking
// engines only read it; writes come from schedule management.
type ScheduleRepository interface {
	ListByDoctor(ctx context.Context, doctorID string) ([]models.ScheduleBlock, error)
	ReplaceForDoctor(ctx context.Context, doctorID string, blocks []models.ScheduleBlock) error
	ListDoctorIDs(ctx context.Context) ([]string, error)
}

type ScheduleUsecase interface {
	GetDoctorSchedule(ctx context.Context, doctorID string) ([]models.ScheduleBlock, error)
	ReplaceDoctorSchedule(ctx context.Context, doctorID string, blocks []models.ScheduleBlock) ([]models.ScheduleBlock, error)
}
