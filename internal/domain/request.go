package domain

import (
	"strings"
	"time"
)

// WorkflowStage enumerates the request lifecycle positions measured by SLA deadlines.
type WorkflowStage string

const (
	StageSubmitted  WorkflowStage = "SUBMITTED"
	StageAssigned   WorkflowStage = "ASSIGNED"
	StageInProgress WorkflowStage = "IN_PROGRESS"
	StageCompleted  WorkflowStage = "COMPLETED"
)

// KnownStage reports whether the stage is one of the recognized lifecycle stages.
// Requests carrying anything else contribute no active deadlines.
func KnownStage(stage WorkflowStage) bool {
	switch stage {
	case StageSubmitted, StageAssigned, StageInProgress, StageCompleted:
		return true
	}
	return false
}

// RequestStatus tracks the request terminal state independently of the workflow stage.
type RequestStatus string

const (
	StatusOpen      RequestStatus = "open"
	StatusCompleted RequestStatus = "completed"
	StatusCancelled RequestStatus = "cancelled"
	StatusClosed    RequestStatus = "closed"
)

// IsTerminal reports whether the status excludes the request from SLA evaluation.
// The comparison is case-insensitive; upstream writers are not consistent about casing.
func (s RequestStatus) IsTerminal() bool {
	switch RequestStatus(strings.ToLower(string(s))) {
	case StatusCompleted, StatusCancelled, StatusClosed:
		return true
	}
	return false
}

// RequestPriority is an open string; the data layer does not confine it to the
// three-way enum, so unrecognized values fall back to medium targets.
type RequestPriority string

const (
	PriorityHigh   RequestPriority = "high"
	PriorityMedium RequestPriority = "medium"
	PriorityLow    RequestPriority = "low"
)

// NormalizePriority maps free-text priority values onto the canonical set.
func NormalizePriority(p RequestPriority) RequestPriority {
	switch RequestPriority(strings.ToLower(strings.TrimSpace(string(p)))) {
	case PriorityHigh, "urgent":
		return PriorityHigh
	case PriorityLow:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// MaintenanceRequest is the aggregate for property maintenance work orders.
type MaintenanceRequest struct {
	ID             string
	ExternalKey    string
	PropertyID     string
	RequesterID    string
	TechnicianID   *string
	Title          string
	Description    string
	Priority       RequestPriority
	WorkflowStage  WorkflowStage
	Status         RequestStatus
	SLAAcceptDue   *time.Time
	SLAArriveDue   *time.Time
	SLACompleteDue *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ClosedAt       *time.Time
}
