package dto

import (
	"time"

	"github.com/mohamedazab224/uberfix-maintenance-service/internal/domain"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/sla"
)

// ViolationResponse is one audit row.
type ViolationResponse struct {
	ID             string                 `json:"id"`
	RequestID      string                 `json:"request_id"`
	ViolationType  sla.DeadlineType       `json:"violation_type"`
	DueDate        time.Time              `json:"due_date"`
	MinutesOverdue int                    `json:"minutes_overdue"`
	Priority       domain.RequestPriority `json:"priority"`
	WorkflowStage  domain.WorkflowStage   `json:"workflow_stage"`
	DetectedAt     time.Time              `json:"detected_at"`
}

// SnapshotRequest is one request in an ad-hoc evaluation snapshot. Deadlines
// arrive as ISO-8601 strings; unparseable values are treated as absent.
type SnapshotRequest struct {
	ID             string `json:"id"`
	Priority       string `json:"priority"`
	WorkflowStage  string `json:"workflow_stage"`
	Status         string `json:"status"`
	SLAAcceptDue   string `json:"sla_accept_due"`
	SLAArriveDue   string `json:"sla_arrive_due"`
	SLACompleteDue string `json:"sla_complete_due"`
}

// EvaluateSnapshotRequest payload for ad-hoc evaluation.
type EvaluateSnapshotRequest struct {
	Now      string            `json:"now"`
	Requests []SnapshotRequest `json:"requests"`
}

// EvaluateSnapshotResponse mirrors the aggregator result.
type EvaluateSnapshotResponse struct {
	Summary    sla.Summary     `json:"summary"`
	Violations []sla.Violation `json:"violations"`
	Warnings   []string        `json:"warnings,omitempty"`
}
