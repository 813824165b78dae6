package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/car_parking_app/internal/core/domain"
	"github.com/robfig/cron/v3"
)

// SlotAuditor lists parkings whose available-slot counter disagrees with their open sessions.
type SlotAuditor interface {
	CheckSlotConsistency(ctx context.Context) ([]domain.SlotUsage, error)
}

// DriftRecorder publishes reconciliation results.
type DriftRecorder interface {
	SlotDrift(parkingCode string, drift int)
	ReconcileRun(outcome string)
}

// SlotReconciler periodically compares slot counters with the session ledger. It only
// reports drift; counters are never rewritten automatically.
type SlotReconciler struct {
	auditor  SlotAuditor
	recorder DriftRecorder
	logger   *slog.Logger
	timeout  time.Duration

	mu       sync.Mutex
	drifting map[string]struct{}
}

// NewSlotReconciler creates a reconciler. A nil logger falls back to slog.Default().
func NewSlotReconciler(auditor SlotAuditor, recorder DriftRecorder, logger *slog.Logger) *SlotReconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlotReconciler{
		auditor:  auditor,
		recorder: recorder,
		logger:   logger.With(slog.String("job", "slot_reconcile")),
		timeout:  30 * time.Second,
		drifting: make(map[string]struct{}),
	}
}

// Run performs a single consistency check.
func (r *SlotReconciler) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	drifted, err := r.auditor.CheckSlotConsistency(ctx)
	if err != nil {
		r.recorder.ReconcileRun("error")
		r.logger.Error("Slot consistency check failed", slog.String("error", err.Error()))
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current := make(map[string]struct{}, len(drifted))
	for _, usage := range drifted {
		current[usage.Code] = struct{}{}
		r.recorder.SlotDrift(usage.Code, usage.Drift())
		r.logger.Warn("Slot counter drift detected",
			slog.String("parking_code", usage.Code),
			slog.Int("total_slots", usage.TotalSlots),
			slog.Int("available_slots", usage.AvailableSlots),
			slog.Int("open_cars", usage.OpenCars),
			slog.Int("drift", usage.Drift()))
	}
	for code := range r.drifting {
		if _, still := current[code]; !still {
			r.recorder.SlotDrift(code, 0)
			r.logger.Info("Slot counter back in sync", slog.String("parking_code", code))
		}
	}
	r.drifting = current

	if len(drifted) > 0 {
		r.recorder.ReconcileRun("drift")
	} else {
		r.recorder.ReconcileRun("ok")
	}
	return nil
}

// Schedule registers r on a new cron scheduler. The returned scheduler is not started.
// An empty schedule disables the job and yields a nil scheduler.
func Schedule(schedule string, r *SlotReconciler) (*cron.Cron, error) {
	if schedule == "" {
		return nil, nil
	}
	c := cron.New(cron.WithChain(cron.Recover(cron.DiscardLogger), cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(schedule, func() {
		_ = r.Run(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("invalid reconcile schedule %q: %w", schedule, err)
	}
	return c, nil
}
