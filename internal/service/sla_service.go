package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/mohamedazab224/uberfix-maintenance-service/internal/events"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/observability"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/repository"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/sla"
	apperrors "github.com/mohamedazab224/uberfix-maintenance-service/pkg/util"
)

// SLAService hosts the evaluation engine: it loads in-flight snapshots, runs
// the aggregator with an explicit now, persists newly detected violations, and
// publishes events for the notification fan-out. The evaluation itself stays
// pure; all I/O happens here.
type SLAService struct {
	requests   repository.RequestRepository
	violations repository.ViolationRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// SLADependencies bundles collaborators for the SLA service.
type SLADependencies struct {
	RequestRepo   repository.RequestRepository
	ViolationRepo repository.ViolationRepository
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
	Metrics       *observability.Metrics
}

// NewSLAService constructs the service.
func NewSLAService(deps SLADependencies) *SLAService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SLAService{
		requests:   deps.RequestRepo,
		violations: deps.ViolationRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		metrics:    deps.Metrics,
	}
}

// DashboardSummary evaluates the current in-flight snapshot for the dashboard
// counters.
func (s *SLAService) DashboardSummary(ctx context.Context, now time.Time) (sla.Summary, error) {
	snapshot, err := s.requests.ListInFlight(ctx)
	if err != nil {
		return sla.Summary{}, apperrors.MapError(err)
	}
	return sla.Evaluate(snapshot, now).Summary, nil
}

// Badge returns the badge policy output for one request, or nil when no
// deadline is active.
func (s *SLAService) Badge(ctx context.Context, requestID string, now time.Time) (*sla.Badge, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("request", map[string]any{"request_id": requestID})
		}
		return nil, apperrors.MapError(err)
	}
	return sla.BadgeFor(request, now), nil
}

// Sweep runs one full evaluation pass. Every overdue deadline is recorded;
// only violations inserted for the first time trigger an event, so repeated
// sweeps over the same miss stay quiet.
func (s *SLAService) Sweep(ctx context.Context, now time.Time) (sla.Result, error) {
	snapshot, err := s.requests.ListInFlight(ctx)
	if err != nil {
		return sla.Result{}, apperrors.MapError(err)
	}

	result := sla.Evaluate(snapshot, now)

	newlyDetected := 0
	for _, violation := range result.Violations {
		inserted, err := s.violations.Record(ctx, violation, now)
		if err != nil {
			// One bad row must not abort the rest of the sweep.
			s.logger.Warn("failed to record violation",
				zap.String("request_id", violation.RequestID),
				zap.String("violation_type", string(violation.Type)),
				zap.Error(err))
			continue
		}
		if !inserted {
			continue
		}
		newlyDetected++
		s.metrics.RecordViolation(string(violation.Type))
		s.publishViolation(ctx, violation, now)
	}

	s.metrics.RecordSweep()
	s.logger.Info("sla sweep completed",
		zap.Int("total", result.Summary.Total),
		zap.Int("on_time", result.Summary.OnTime),
		zap.Int("at_risk", result.Summary.AtRisk),
		zap.Int("overdue", result.Summary.Overdue),
		zap.Int("new_violations", newlyDetected))
	return result, nil
}

// RecentViolations lists the latest audit rows.
func (s *SLAService) RecentViolations(ctx context.Context, limit int) ([]repository.ViolationAudit, error) {
	audits, err := s.violations.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return audits, nil
}

func (s *SLAService) publishViolation(ctx context.Context, violation sla.Violation, now time.Time) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSLAViolationDetected,
		RequestID: violation.RequestID,
		Timestamp: now,
		Payload:   events.SLAViolationPayload{Violation: violation},
	})
}
