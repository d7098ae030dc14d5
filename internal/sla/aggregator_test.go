package sla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedazab224/uberfix-maintenance-service/internal/domain"
)

func due(base time.Time, offset time.Duration) *time.Time {
	v := base.Add(offset)
	return &v
}

func TestEvaluate_OverdueAcceptEmitsViolation(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	requests := []domain.MaintenanceRequest{{
		ID:            "req-1",
		Priority:      domain.PriorityHigh,
		WorkflowStage: domain.StageSubmitted,
		Status:        domain.RequestStatus("Open"),
		SLAAcceptDue:  due(now, -90*time.Minute),
	}}

	result := Evaluate(requests, now)

	assert.Equal(t, Summary{Total: 1, Overdue: 1}, result.Summary)
	require.Len(t, result.Violations, 1)
	v := result.Violations[0]
	assert.Equal(t, "req-1", v.RequestID)
	assert.Equal(t, DeadlineAccept, v.Type)
	assert.Equal(t, 90, v.MinutesOverdue)
	assert.Equal(t, domain.PriorityHigh, v.Priority)
	assert.Equal(t, domain.StageSubmitted, v.WorkflowStage)
}

func TestEvaluate_TerminalRequestsExcluded(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	requests := []domain.MaintenanceRequest{
		{
			ID:             "req-done",
			WorkflowStage:  domain.StageInProgress,
			Status:         domain.StatusCompleted,
			SLACompleteDue: due(now, -24*time.Hour),
		},
		{
			ID:             "req-cancelled",
			WorkflowStage:  domain.StageSubmitted,
			Status:         domain.RequestStatus("CANCELLED"),
			SLAAcceptDue:   due(now, -time.Hour),
			SLACompleteDue: due(now, -time.Hour),
		},
	}

	result := Evaluate(requests, now)

	assert.Equal(t, Summary{}, result.Summary)
	assert.Empty(t, result.Violations)
}

func TestEvaluate_BatchSummaryCounts(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	requests := []domain.MaintenanceRequest{
		{
			ID:            "overdue-accept",
			WorkflowStage: domain.StageSubmitted,
			Status:        domain.StatusOpen,
			SLAAcceptDue:  due(now, -10*time.Minute),
		},
		{
			ID:            "at-risk-arrive",
			WorkflowStage: domain.StageAssigned,
			Status:        domain.StatusOpen,
			SLAArriveDue:  due(now, 30*time.Minute),
		},
		{
			ID:             "on-time",
			WorkflowStage:  domain.StageInProgress,
			Status:         domain.StatusOpen,
			SLACompleteDue: due(now, 3*time.Hour),
		},
	}

	result := Evaluate(requests, now)

	assert.Equal(t, Summary{Total: 3, OnTime: 1, AtRisk: 1, Overdue: 1}, result.Summary)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, "overdue-accept", result.Violations[0].RequestID)
}

func TestEvaluate_CompleteWindowIsTwoHours(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	requests := []domain.MaintenanceRequest{{
		ID:             "req-1",
		WorkflowStage:  domain.StageInProgress,
		Status:         domain.StatusOpen,
		SLACompleteDue: due(now, 3*time.Hour),
	}}

	result := Evaluate(requests, now)
	assert.Equal(t, Summary{Total: 1, OnTime: 1}, result.Summary)

	requests[0].SLACompleteDue = due(now, 90*time.Minute)
	result = Evaluate(requests, now)
	assert.Equal(t, Summary{Total: 1, AtRisk: 1}, result.Summary)
}

func TestEvaluate_StalledRequestEmitsOnePerMissedDeadline(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	requests := []domain.MaintenanceRequest{{
		ID:             "stalled",
		WorkflowStage:  domain.StageSubmitted,
		Status:         domain.StatusOpen,
		SLAAcceptDue:   due(now, -3*time.Hour),
		SLAArriveDue:   due(now, -2*time.Hour),
		SLACompleteDue: due(now, -time.Hour),
	}}

	result := Evaluate(requests, now)

	// Counts once in the summary, but one violation per missed deadline type.
	assert.Equal(t, Summary{Total: 1, Overdue: 1}, result.Summary)
	require.Len(t, result.Violations, 3)
	assert.Equal(t, DeadlineAccept, result.Violations[0].Type)
	assert.Equal(t, DeadlineArrive, result.Violations[1].Type)
	assert.Equal(t, DeadlineComplete, result.Violations[2].Type)
	assert.Equal(t, 180, result.Violations[0].MinutesOverdue)
}

func TestEvaluate_NoDeadlinesDefaultsOnTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	requests := []domain.MaintenanceRequest{
		{ID: "bare", WorkflowStage: domain.StageSubmitted, Status: domain.StatusOpen},
		{
			ID:             "odd-stage",
			WorkflowStage:  domain.WorkflowStage("ON_HOLD"),
			Status:         domain.StatusOpen,
			SLACompleteDue: due(now, -time.Hour),
		},
	}

	result := Evaluate(requests, now)

	assert.Equal(t, Summary{Total: 2, OnTime: 2}, result.Summary)
	assert.Empty(t, result.Violations)
}

func TestEvaluate_Idempotent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	requests := []domain.MaintenanceRequest{
		{
			ID:            "a",
			WorkflowStage: domain.StageSubmitted,
			Status:        domain.StatusOpen,
			SLAAcceptDue:  due(now, -45*time.Minute),
		},
		{
			ID:            "b",
			WorkflowStage: domain.StageAssigned,
			Status:        domain.StatusOpen,
			SLAArriveDue:  due(now, 10*time.Minute),
		},
	}

	first := Evaluate(requests, now)
	second := Evaluate(requests, now)
	assert.Equal(t, first, second)
}

func TestEvaluate_ZeroRemainingIsNotOverdue(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	requests := []domain.MaintenanceRequest{{
		ID:            "edge",
		WorkflowStage: domain.StageSubmitted,
		Status:        domain.StatusOpen,
		SLAAcceptDue:  &now,
	}}

	result := Evaluate(requests, now)

	assert.Equal(t, Summary{Total: 1, AtRisk: 1}, result.Summary)
	assert.Empty(t, result.Violations)
}
