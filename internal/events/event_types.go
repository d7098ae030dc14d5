package events

import (
	"time"

	"github.com/mohamedazab224/uberfix-maintenance-service/internal/domain"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/sla"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestCreated       EventType = "request_created"
	EventRequestAssigned      EventType = "request_assigned"
	EventRequestStageChanged  EventType = "request_stage_changed"
	EventSLAViolationDetected EventType = "sla_violation_detected"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RequestID string      `json:"request_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RequestCreatedPayload payload.
type RequestCreatedPayload struct {
	PropertyID string                 `json:"property_id"`
	Priority   domain.RequestPriority `json:"priority"`
	Title      string                 `json:"title"`
	AcceptDue  *time.Time             `json:"accept_due,omitempty"`
}

// RequestAssignedPayload payload.
type RequestAssignedPayload struct {
	TechnicianID string     `json:"technician_id"`
	ArriveDue    *time.Time `json:"arrive_due,omitempty"`
	CompleteDue  *time.Time `json:"complete_due,omitempty"`
}

// RequestStageChangedPayload payload.
type RequestStageChangedPayload struct {
	OldStage  domain.WorkflowStage `json:"old_stage"`
	NewStage  domain.WorkflowStage `json:"new_stage"`
	OldStatus domain.RequestStatus `json:"old_status"`
	NewStatus domain.RequestStatus `json:"new_status"`
}

// SLAViolationPayload carries the violation record that triggered the event.
type SLAViolationPayload struct {
	Violation sla.Violation `json:"violation"`
}
