package dto

import (
	"time"

	"github.com/mohamedazab224/uberfix-maintenance-service/internal/domain"
)

// CreateRequestRequest payload.
type CreateRequestRequest struct {
	PropertyID  string                 `json:"property_id"`
	RequesterID string                 `json:"requester_id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Priority    domain.RequestPriority `json:"priority"`
}

// AssignRequestRequest payload.
type AssignRequestRequest struct {
	TechnicianID string `json:"technician_id"`
}

// RequestSummary response.
type RequestSummary struct {
	ID             string                 `json:"id"`
	ExternalKey    string                 `json:"external_key"`
	PropertyID     string                 `json:"property_id"`
	TechnicianID   *string                `json:"technician_id"`
	Title          string                 `json:"title"`
	Priority       domain.RequestPriority `json:"priority"`
	WorkflowStage  domain.WorkflowStage   `json:"workflow_stage"`
	Status         domain.RequestStatus   `json:"status"`
	SLAAcceptDue   *time.Time             `json:"sla_accept_due"`
	SLAArriveDue   *time.Time             `json:"sla_arrive_due"`
	SLACompleteDue *time.Time             `json:"sla_complete_due"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
	ClosedAt       *time.Time             `json:"closed_at,omitempty"`
}

// RequestDetailResponse provides full request info.
type RequestDetailResponse struct {
	RequestSummary
	Description string `json:"description"`
	RequesterID string `json:"requester_id"`
}

// NewRequestSummary maps a domain request to the summary DTO.
func NewRequestSummary(request *domain.MaintenanceRequest) RequestSummary {
	return RequestSummary{
		ID:             request.ID,
		ExternalKey:    request.ExternalKey,
		PropertyID:     request.PropertyID,
		TechnicianID:   request.TechnicianID,
		Title:          request.Title,
		Priority:       request.Priority,
		WorkflowStage:  request.WorkflowStage,
		Status:         request.Status,
		SLAAcceptDue:   request.SLAAcceptDue,
		SLAArriveDue:   request.SLAArriveDue,
		SLACompleteDue: request.SLACompleteDue,
		CreatedAt:      request.CreatedAt,
		UpdatedAt:      request.UpdatedAt,
		ClosedAt:       request.ClosedAt,
	}
}

// NewRequestDetail maps a domain request to the detail DTO.
func NewRequestDetail(request *domain.MaintenanceRequest) RequestDetailResponse {
	return RequestDetailResponse{
		RequestSummary: NewRequestSummary(request),
		Description:    request.Description,
		RequesterID:    request.RequesterID,
	}
}
