package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mohamedazab224/uberfix-maintenance-service/internal/service"
)

// SweepWorker drives the periodic SLA sweep. Each tick evaluates a fresh
// snapshot against the wall clock; the worker holds no state between runs.
type SweepWorker struct {
	sla      *service.SLAService
	interval time.Duration
	logger   *zap.Logger
}

// NewSweepWorker creates the worker.
func NewSweepWorker(slaService *service.SLAService, interval time.Duration, logger *zap.Logger) *SweepWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SweepWorker{sla: slaService, interval: interval, logger: logger}
}

// Run blocks until the context is cancelled, sweeping on every tick.
func (w *SweepWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("sla sweep worker started", zap.Duration("interval", w.interval))
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("sla sweep worker stopped")
			return
		case <-ticker.C:
			if _, err := w.sla.Sweep(ctx, time.Now().UTC()); err != nil {
				w.logger.Error("sla sweep failed", zap.Error(err))
			}
		}
	}
}

// StartNotificationWorker registers notification handlers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
