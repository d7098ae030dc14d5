package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mohamedazab224/uberfix-maintenance-service/internal/config"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/domain"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/events"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/repository"
	apperrors "github.com/mohamedazab224/uberfix-maintenance-service/pkg/util"
)

// RequestService coordinates the maintenance request lifecycle. SLA deadlines
// are stamped here, at creation and assignment time; the evaluation engine
// only ever reads them back.
type RequestService struct {
	requests   repository.RequestRepository
	dispatcher events.Dispatcher
	slaCfg     config.SLAConfig
	now        func() time.Time
}

// RequestDependencies bundles collaborators for the request service.
type RequestDependencies struct {
	RequestRepo repository.RequestRepository
	Dispatcher  events.Dispatcher
	SLAConfig   config.SLAConfig
	Now         func() time.Time
}

// RequestCreateInput describes request creation payload.
type RequestCreateInput struct {
	PropertyID  string
	RequesterID string
	Title       string
	Description string
	Priority    domain.RequestPriority
}

// NewRequestService constructs the service.
func NewRequestService(deps RequestDependencies) *RequestService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &RequestService{
		requests:   deps.RequestRepo,
		dispatcher: deps.Dispatcher,
		slaCfg:     deps.SLAConfig,
		now:        now,
	}
}

// Create opens a new request in SUBMITTED stage and stamps the accept deadline
// from the priority targets.
func (s *RequestService) Create(ctx context.Context, input RequestCreateInput) (*domain.MaintenanceRequest, error) {
	if strings.TrimSpace(input.PropertyID) == "" || strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("property_id and title required", nil)
	}

	now := s.now()
	targets := s.slaCfg.TargetsFor(input.Priority)
	acceptDue := now.Add(targets.Accept)

	request := &domain.MaintenanceRequest{
		ExternalKey:   generateRequestKey(),
		PropertyID:    input.PropertyID,
		RequesterID:   input.RequesterID,
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		Priority:      input.Priority,
		WorkflowStage: domain.StageSubmitted,
		Status:        domain.StatusOpen,
		SLAAcceptDue:  &acceptDue,
	}
	if request.Priority == "" {
		request.Priority = domain.PriorityMedium
	}

	if err := s.requests.Create(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestCreated,
		RequestID: request.ID,
		Payload: events.RequestCreatedPayload{
			PropertyID: request.PropertyID,
			Priority:   request.Priority,
			Title:      request.Title,
			AcceptDue:  request.SLAAcceptDue,
		},
	})
	return request, nil
}

// Assign moves a SUBMITTED request to ASSIGNED and stamps the arrive and
// complete deadlines for the technician.
func (s *RequestService) Assign(ctx context.Context, requestID, technicianID string) (*domain.MaintenanceRequest, error) {
	if strings.TrimSpace(technicianID) == "" {
		return nil, apperrors.NewValidationError("technician_id required", nil)
	}
	request, err := s.getActive(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.WorkflowStage != domain.StageSubmitted {
		return nil, apperrors.NewConflict("request not awaiting assignment", map[string]any{
			"workflow_stage": request.WorkflowStage,
		})
	}

	now := s.now()
	targets := s.slaCfg.TargetsFor(request.Priority)
	arriveDue := now.Add(targets.Arrive)
	completeDue := now.Add(targets.Complete)

	oldStage := request.WorkflowStage
	request.TechnicianID = &technicianID
	request.WorkflowStage = domain.StageAssigned
	request.SLAArriveDue = &arriveDue
	request.SLACompleteDue = &completeDue

	if err := s.requests.Update(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestAssigned,
		RequestID: request.ID,
		Payload: events.RequestAssignedPayload{
			TechnicianID: technicianID,
			ArriveDue:    request.SLAArriveDue,
			CompleteDue:  request.SLACompleteDue,
		},
	})
	s.publishStageChange(ctx, request, oldStage, request.Status, request.Status)
	return request, nil
}

// Start marks the technician as on site, moving the request to IN_PROGRESS.
func (s *RequestService) Start(ctx context.Context, requestID string) (*domain.MaintenanceRequest, error) {
	request, err := s.getActive(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.WorkflowStage != domain.StageAssigned {
		return nil, apperrors.NewConflict("request not assigned", map[string]any{
			"workflow_stage": request.WorkflowStage,
		})
	}
	oldStage := request.WorkflowStage
	request.WorkflowStage = domain.StageInProgress
	if err := s.requests.Update(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishStageChange(ctx, request, oldStage, request.Status, request.Status)
	return request, nil
}

// Complete finishes the work, making both the stage and status terminal.
func (s *RequestService) Complete(ctx context.Context, requestID string) (*domain.MaintenanceRequest, error) {
	request, err := s.getActive(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.WorkflowStage != domain.StageInProgress && request.WorkflowStage != domain.StageAssigned {
		return nil, apperrors.NewConflict("request has no work in progress", map[string]any{
			"workflow_stage": request.WorkflowStage,
		})
	}
	now := s.now()
	oldStage := request.WorkflowStage
	oldStatus := request.Status
	request.WorkflowStage = domain.StageCompleted
	request.Status = domain.StatusCompleted
	request.ClosedAt = &now
	if err := s.requests.Update(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishStageChange(ctx, request, oldStage, oldStatus, request.Status)
	return request, nil
}

// Cancel terminates the request without completing the work.
func (s *RequestService) Cancel(ctx context.Context, requestID string) (*domain.MaintenanceRequest, error) {
	request, err := s.getActive(ctx, requestID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	oldStatus := request.Status
	request.Status = domain.StatusCancelled
	request.ClosedAt = &now
	if err := s.requests.Update(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishStageChange(ctx, request, request.WorkflowStage, oldStatus, request.Status)
	return request, nil
}

// Get fetches a request by id.
func (s *RequestService) Get(ctx context.Context, requestID string) (*domain.MaintenanceRequest, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("request", map[string]any{"request_id": requestID})
		}
		return nil, apperrors.MapError(err)
	}
	return request, nil
}

// List returns requests matching the filter.
func (s *RequestService) List(ctx context.Context, filter repository.RequestFilter) ([]domain.MaintenanceRequest, error) {
	requests, err := s.requests.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return requests, nil
}

func (s *RequestService) getActive(ctx context.Context, requestID string) (*domain.MaintenanceRequest, error) {
	request, err := s.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status.IsTerminal() {
		return nil, apperrors.NewConflict("request already terminal", map[string]any{
			"status": request.Status,
		})
	}
	return request, nil
}

func (s *RequestService) publishStageChange(ctx context.Context, request *domain.MaintenanceRequest, oldStage domain.WorkflowStage, oldStatus, newStatus domain.RequestStatus) {
	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestStageChanged,
		RequestID: request.ID,
		Payload: events.RequestStageChangedPayload{
			OldStage:  oldStage,
			NewStage:  request.WorkflowStage,
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
}

func (s *RequestService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func generateRequestKey() string {
	return "MRQ-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
