package sla

import (
	"time"

	"github.com/mohamedazab224/uberfix-maintenance-service/internal/domain"
)

// Summary holds batch-level counts for dashboard consumers. Each non-terminal
// request counts exactly once, under its worst active-deadline bucket.
type Summary struct {
	Total   int `json:"total"`
	OnTime  int `json:"on_time"`
	AtRisk  int `json:"at_risk"`
	Overdue int `json:"overdue"`
}

// Violation is the structured record emitted for each individually-overdue
// deadline. Records are recomputed from absolute timestamps on every run,
// never accumulated between runs.
type Violation struct {
	RequestID      string                 `json:"request_id"`
	Type           DeadlineType           `json:"violation_type"`
	DueDate        time.Time              `json:"due_date"`
	MinutesOverdue int                    `json:"minutes_overdue"`
	Priority       domain.RequestPriority `json:"priority"`
	WorkflowStage  domain.WorkflowStage   `json:"workflow_stage"`
}

// Result is the full output of one aggregator run.
type Result struct {
	Summary    Summary     `json:"summary"`
	Violations []Violation `json:"violations"`
}

// Evaluate classifies a snapshot of requests against an explicit now.
// Terminal requests are excluded entirely; every remaining request counts
// toward the summary, defaulting to on-time when it has no active deadlines.
// One violation is emitted per overdue deadline, so a stalled request can
// contribute up to three in a single run. The computation is pure and
// deterministic: the same snapshot and now always yield the same result.
func Evaluate(requests []domain.MaintenanceRequest, now time.Time) Result {
	result := Result{Violations: []Violation{}}

	for i := range requests {
		req := &requests[i]
		if req.Status.IsTerminal() {
			continue
		}
		result.Summary.Total++

		worst := BucketOnTime
		for _, deadline := range ActiveDeadlines(req) {
			d := Remaining(deadline.Due, now)
			worst = worseBatch(worst, ClassifyBatch(deadline.Type, d))
			if d < 0 {
				result.Violations = append(result.Violations, Violation{
					RequestID:      req.ID,
					Type:           deadline.Type,
					DueDate:        deadline.Due,
					MinutesOverdue: Breakdown(d).Minutes,
					Priority:       req.Priority,
					WorkflowStage:  req.WorkflowStage,
				})
			}
		}

		switch worst {
		case BucketOverdue:
			result.Summary.Overdue++
		case BucketAtRisk:
			result.Summary.AtRisk++
		default:
			result.Summary.OnTime++
		}
	}
	return result
}
