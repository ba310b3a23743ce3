package availability

import (
	"context"
	"telecare-service/internal/app/config"
	"telecare-service/internal/app/contracts"
	"telecare-service/internal/pkg/constvars"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// leaderLockKey ensures a single warmer leader across instances.
const leaderLockKey = "availability:warmer:leader"

// Worker periodically precomputes availability for every doctor over the
// configured rolling window, keeping the cache warm for the common read path.
type Worker struct {
	log          *zap.Logger
	cfg          *config.InternalConfig
	locker       contracts.LockerService
	scheduleRepo contracts.ScheduleRepository
	availability contracts.AvailabilityUsecase
	location     *time.Location
	cron         *cron.Cron
	runCtx       context.Context
	cancel       context.CancelFunc
}

func NewWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	lockerSvc contracts.LockerService,
	scheduleRepo contracts.ScheduleRepository,
	availabilityUsecase contracts.AvailabilityUsecase,
	location *time.Location,
) *Worker {
	return &Worker{
		log:          log,
		cfg:          cfg,
		locker:       lockerSvc,
		scheduleRepo: scheduleRepo,
		availability: availabilityUsecase,
		location:     location,
	}
}

// Start schedules the warmer with the configured cron spec.
func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.App.CacheWarmerCronSpec
	_, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("availability.worker: invalid cron spec, falling back to @daily", zap.Error(err))
		c = cron.New()
		_, _ = c.AddFunc("@daily", func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop cancels in-flight runs and waits for the cron scheduler to drain.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	ttl := 2 * time.Minute
	acquired, token, err := w.locker.TryLock(ctx, leaderLockKey, ttl)
	if err != nil {
		w.log.Warn("availability.worker: leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Info("availability.worker: leader lock held elsewhere, skipping run")
		return
	}
	defer w.locker.Unlock(ctx, leaderLockKey, token)

	doctorIDs, err := w.scheduleRepo.ListDoctorIDs(ctx)
	if err != nil {
		w.log.Warn("availability.worker: listing doctors failed", zap.Error(err))
		return
	}

	today := time.Now().In(w.location)
	rangeStart := today.Format(constvars.DateOnlyFormat)
	rangeEnd := today.AddDate(0, 0, w.cfg.App.AvailabilityWindowDays).Format(constvars.DateOnlyFormat)

	warmed := 0
	for _, doctorID := range doctorIDs {
		if ctx.Err() != nil {
			return
		}
		if _, err := w.availability.GetDoctorAvailability(ctx, doctorID, rangeStart, rangeEnd); err != nil {
			w.log.Warn("availability.worker: warming doctor failed",
				zap.String(constvars.LoggingDoctorIDKey, doctorID),
				zap.Error(err),
			)
			continue
		}
		warmed++
	}
	w.log.Info("availability.worker: warm cycle finished",
		zap.Int("doctors_total", len(doctorIDs)),
		zap.Int("doctors_warmed", warmed),
	)
}
