package sla

import (
	"time"

	"github.com/mohamedazab224/uberfix-maintenance-service/internal/domain"
)

// DeadlineType identifies which workflow transition a deadline measures.
type DeadlineType string

const (
	DeadlineAccept   DeadlineType = "accept"
	DeadlineArrive   DeadlineType = "arrive"
	DeadlineComplete DeadlineType = "complete"
)

// Deadline pairs a deadline type with its absolute due time.
type Deadline struct {
	Type DeadlineType
	Due  time.Time
}

// ActiveDeadline selects the single deadline the badge call sites render,
// using a first-match chain: accept while SUBMITTED, arrive while ASSIGNED,
// otherwise complete whenever set and the stage has not reached COMPLETED.
// Returns nil for terminal requests and unrecognized stages.
func ActiveDeadline(req *domain.MaintenanceRequest) *Deadline {
	if req.Status.IsTerminal() || !domain.KnownStage(req.WorkflowStage) {
		return nil
	}
	switch {
	case req.WorkflowStage == domain.StageSubmitted && req.SLAAcceptDue != nil:
		return &Deadline{Type: DeadlineAccept, Due: *req.SLAAcceptDue}
	case req.WorkflowStage == domain.StageAssigned && req.SLAArriveDue != nil:
		return &Deadline{Type: DeadlineArrive, Due: *req.SLAArriveDue}
	case req.SLACompleteDue != nil && req.WorkflowStage != domain.StageCompleted:
		return &Deadline{Type: DeadlineComplete, Due: *req.SLACompleteDue}
	}
	return nil
}

// ActiveDeadlines returns every deadline still being measured for the request,
// each gated only by its own lifecycle window: accept while the stage is
// SUBMITTED, arrive until the stage leaves ASSIGNED, complete until the stage
// reaches COMPLETED. A stalled workflow can therefore hold up to three at once.
func ActiveDeadlines(req *domain.MaintenanceRequest) []Deadline {
	if req.Status.IsTerminal() || !domain.KnownStage(req.WorkflowStage) {
		return nil
	}
	var active []Deadline
	if req.WorkflowStage == domain.StageSubmitted && req.SLAAcceptDue != nil {
		active = append(active, Deadline{Type: DeadlineAccept, Due: *req.SLAAcceptDue})
	}
	if (req.WorkflowStage == domain.StageSubmitted || req.WorkflowStage == domain.StageAssigned) && req.SLAArriveDue != nil {
		active = append(active, Deadline{Type: DeadlineArrive, Due: *req.SLAArriveDue})
	}
	if req.WorkflowStage != domain.StageCompleted && req.SLACompleteDue != nil {
		active = append(active, Deadline{Type: DeadlineComplete, Due: *req.SLACompleteDue})
	}
	return active
}
