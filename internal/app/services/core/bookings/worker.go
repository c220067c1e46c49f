package bookings

import (
	"context"
	"time"

	"agendaclin-service/internal/app/config"
	"agendaclin-service/internal/app/contracts"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ExpiryWorker periodically cancels stale pending bookings. A redis leader
// lock keeps the job single-flight across replicas.
type ExpiryWorker struct {
	log            *zap.Logger
	cfg            *config.InternalConfig
	locker         contracts.LockerService
	bookingUsecase contracts.BookingUsecase
	cron           *cron.Cron
	runCtx         context.Context
	cancel         context.CancelFunc
}

func NewExpiryWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, bookingUsecase contracts.BookingUsecase) *ExpiryWorker {
	return &ExpiryWorker{log: log, cfg: cfg, locker: lockerSvc, bookingUsecase: bookingUsecase}
}

// Start schedules the periodic run. Stop cancels in-flight runs and waits for
// the cron to drain.
func (w *ExpiryWorker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.Booking.ExpiryWorkerCronSpec
	_, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("bookings.worker: failed to schedule with provided cron spec; falling back to @every 5m", zap.Error(err))
		c = cron.New()
		_, _ = c.AddFunc("@every 5m", func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

func (w *ExpiryWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
	}
}

// refreshInterval halves the lock TTL, clamped so a misconfigured tiny TTL can
// never produce a non-positive ticker interval.
func refreshInterval(ttl time.Duration) time.Duration {
	interval := ttl / 2
	if interval < time.Second {
		return time.Second
	}
	return interval
}

func (w *ExpiryWorker) runOnce(ctx context.Context) {
	ttl := time.Duration(w.cfg.Booking.ExpiryWorkerLockTTLInSecs) * time.Second
	acquired, token, err := w.locker.TryLock(ctx, w.cfg.Booking.ExpiryWorkerLockKey, ttl)
	if err != nil {
		w.log.Warn("bookings.worker: leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Info("bookings.worker: leader lock not acquired; another instance is running")
		return
	}
	defer w.locker.Unlock(ctx, w.cfg.Booking.ExpiryWorkerLockKey, token)

	// Refresh the lock while the batch runs so a slow pass does not lose
	// leadership mid-flight.
	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go func() {
		tick := time.NewTicker(refreshInterval(ttl))
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				if err := w.locker.Refresh(refreshCtx, w.cfg.Booking.ExpiryWorkerLockKey, token, ttl); err != nil {
					w.log.Warn("bookings.worker: lock refresh failed", zap.Error(err))
					return
				}
			}
		}
	}()

	expired, err := w.bookingUsecase.ExpireStalePending(ctx)
	if err != nil {
		w.log.Error("bookings.worker: expiry pass failed", zap.Error(err))
		return
	}
	if expired > 0 {
		w.log.Info("bookings.worker: expired stale pending bookings", zap.Int("count", expired))
	}
}
