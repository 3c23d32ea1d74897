package appointments

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/pkg/constvars"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	defaultCompletionCronSpec   = "@every 15m"
	defaultCompletionLeaderTTL  = 2 * time.Minute
	completionLeaderReleaseWait = 2 * time.Second
)

// Worker periodically completes confirmed appointments whose time has
// passed. Only the instance holding the leader lock does the work.
type Worker struct {
	log                *zap.Logger
	cfg                *config.InternalConfig
	locker             contracts.LockerService
	appointmentUsecase contracts.AppointmentUsecase
	cron               *cron.Cron
	runCtx             context.Context
	cancel             context.CancelFunc
	now                func() time.Time
}

func NewWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, appointmentUsecase contracts.AppointmentUsecase) *Worker {
	return &Worker{
		log:                log,
		cfg:                cfg,
		locker:             lockerSvc,
		appointmentUsecase: appointmentUsecase,
		now:                time.Now,
	}
}

func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)

	spec := w.cfg.Appointment.CompletionWorkerCronSpec
	if spec == "" {
		spec = defaultCompletionCronSpec
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() { w.RunOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("appointments.worker: invalid cron spec, falling back to default",
			zap.String(constvars.LoggingCronSpecKey, spec),
			zap.Error(err),
		)
		spec = defaultCompletionCronSpec
		c = cron.New()
		_, _ = c.AddFunc(spec, func() { w.RunOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c

	w.log.Info("appointments.worker started",
		zap.String(constvars.LoggingCronSpecKey, spec),
	)
}

// Stop cancels in-flight runs and waits for the running job to return.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

func (w *Worker) RunOnce(ctx context.Context) {
	ttl := w.leaderTTL()
	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeyCompletionLeader, ttl)
	if err != nil {
		w.log.Warn("appointments.worker: leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Info("appointments.worker: leader lock held by another instance")
		return
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), completionLeaderReleaseWait)
		defer cancel()
		if err := w.locker.Unlock(releaseCtx, constvars.RedisKeyCompletionLeader, token); err != nil {
			w.log.Warn("appointments.worker: failed to release leader lock", zap.Error(err))
		}
	}()

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go func() {
		tick := time.NewTicker(ttl / 2)
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				if err := w.locker.Refresh(refreshCtx, constvars.RedisKeyCompletionLeader, token, ttl); err != nil {
					w.log.Warn("appointments.worker: failed to refresh leader lock", zap.Error(err))
				}
			}
		}
	}()

	completed, err := w.appointmentUsecase.CompletePastAppointments(ctx, w.now())
	if err != nil {
		w.log.Error("appointments.worker: completing past appointments failed", zap.Error(err))
		return
	}
	w.log.Info("appointments.worker: run finished",
		zap.Int64(constvars.LoggingAppointmentCount, completed),
	)
}

func (w *Worker) leaderTTL() time.Duration {
	if w.cfg.Appointment.CompletionLeaderLockTTLInSecond <= 0 {
		return defaultCompletionLeaderTTL
	}
	return time.Duration(w.cfg.Appointment.CompletionLeaderLockTTLInSecond) * time.Second
}
