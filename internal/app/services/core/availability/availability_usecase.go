package availability

import (
	"context"
	"fmt"
	"sync"
	"telecare-service/internal/app/contracts"
	"telecare-service/internal/pkg/constvars"
	"telecare-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	availabilityUsecaseInstance contracts.AvailabilityUsecase
	onceAvailabilityUsecase     sync.Once
)

type availabilityUsecase struct {
	ScheduleRepository    contracts.ScheduleRepository
	AppointmentRepository contracts.AppointmentRepository
	RedisRepository       contracts.RedisRepository
	Log                   *zap.Logger
	Location              *time.Location
	CacheTTL              time.Duration

	// now is swappable in tests.
	now func() time.Time
}

func NewAvailabilityUsecase(
	scheduleRepository contracts.ScheduleRepository,
	appointmentRepository contracts.AppointmentRepository,
	redisRepository contracts.RedisRepository,
	logger *zap.Logger,
	location *time.Location,
	cacheTTL time.Duration,
) contracts.AvailabilityUsecase {
	onceAvailabilityUsecase.Do(func() {
		availabilityUsecaseInstance = &availabilityUsecase{
			ScheduleRepository:    scheduleRepository,
			AppointmentRepository: appointmentRepository,
			RedisRepository:       redisRepository,
			Log:                   logger,
			Location:              location,
			CacheTTL:              cacheTTL,
			now:                   time.Now,
		}
	})
	return availabilityUsecaseInstance
}

func (uc *availabilityUsecase) GetDoctorAvailability(ctx context.Context, doctorID, rangeStart, rangeEnd string) ([]contracts.DayAvailability, error) {
	start, err := time.ParseInLocation(constvars.DateOnlyFormat, rangeStart, uc.Location)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	end, err := time.ParseInLocation(constvars.DateOnlyFormat, rangeEnd, uc.Location)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	if !start.Before(end) {
		return nil, exceptions.ErrInvalidDateRange(fmt.Errorf("rangeStart %s is not before rangeEnd %s", rangeStart, rangeEnd))
	}

	cacheKey := uc.cacheKey(ctx, doctorID, rangeStart, rangeEnd)
	if cached := uc.readCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	days, err := uc.computeAvailability(ctx, doctorID, start, end)
	if err != nil {
		return nil, err
	}

	uc.writeCache(ctx, cacheKey, days)
	return days, nil
}

func (uc *availabilityUsecase) computeAvailability(ctx context.Context, doctorID string, start, end time.Time) ([]contracts.DayAvailability, error) {
	blocks, err := uc.ScheduleRepository.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	plan, err := ConvertBlocksToWeeklyPlan(blocks)
	if err != nil {
		uc.Log.Error("availabilityUsecase.computeAvailability invalid stored schedule",
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
		return nil, exceptions.ErrInvalidScheduleBlock(err)
	}

	days := []contracts.DayAvailability{}
	if plan.empty() {
		return days, nil
	}

	appointments, err := uc.AppointmentRepository.FindBlockingByDoctorWithinRange(ctx, doctorID, start, end)
	if err != nil {
		return nil, err
	}

	now := uc.now().In(uc.Location)
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		windows := plan.forWeekday(day.Weekday())
		if len(windows) == 0 {
			continue
		}

		busy := busyIntervalsForDay(appointments, day)
		var slots []interval
		for _, w := range windows {
			slots = append(slots, slotsForWindow(day, uc.Location, w, now, busy)...)
		}
		slots = dedupeAndSortSlots(slots)
		if len(slots) == 0 {
			continue
		}

		ranges := make([]contracts.SlotRange, len(slots))
		for i, s := range slots {
			ranges[i] = contracts.SlotRange{Start: s.Start, End: s.End}
		}
		days = append(days, contracts.DayAvailability{
			Date:  day.Format(constvars.DateOnlyFormat),
			Slots: ranges,
		})
	}
	return days, nil
}

func (uc *availabilityUsecase) InvalidateDoctorCache(ctx context.Context, doctorID string) error {
	_, err := uc.RedisRepository.Increment(ctx, versionKey(doctorID))
	if err != nil {
		uc.Log.Error("availabilityUsecase.InvalidateDoctorCache error incrementing version",
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// cacheKey embeds the doctor's cache version so invalidation never has to
// enumerate keys: bumping the version orphans every older entry, and TTL
// reclaims them.
func (uc *availabilityUsecase) cacheKey(ctx context.Context, doctorID, rangeStart, rangeEnd string) string {
	version, err := uc.RedisRepository.Get(ctx, versionKey(doctorID))
	if err != nil {
		uc.Log.Warn("availabilityUsecase.cacheKey error reading version, bypassing cache",
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
		return ""
	}
	if version == "" {
		version = "0"
	}
	return fmt.Sprintf("availability:doctor:%s:v%s:%s:%s", doctorID, version, rangeStart, rangeEnd)
}

func (uc *availabilityUsecase) readCache(ctx context.Context, key string) []contracts.DayAvailability {
	if key == "" {
		return nil
	}
	raw, err := uc.RedisRepository.Get(ctx, key)
	if err != nil {
		uc.Log.Warn("availabilityUsecase.readCache error reading cache, recomputing",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return nil
	}
	if raw == "" {
		return nil
	}

	var days []contracts.DayAvailability
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		uc.Log.Warn("availabilityUsecase.readCache corrupt cache entry, recomputing",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return nil
	}
	return days
}

func (uc *availabilityUsecase) writeCache(ctx context.Context, key string, days []contracts.DayAvailability) {
	if key == "" {
		return
	}
	if err := uc.RedisRepository.Set(ctx, key, days, uc.CacheTTL); err != nil {
		uc.Log.Warn("availabilityUsecase.writeCache error storing cache entry",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
	}
}

func versionKey(doctorID string) string {
	return fmt.Sprintf("availability:version:doctor:%s", doctorID)
}
