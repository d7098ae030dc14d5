package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/mohamedazab224/uberfix-maintenance-service/internal/api/dto"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/domain"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/service"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/sla"
	apperrors "github.com/mohamedazab224/uberfix-maintenance-service/pkg/util"
)

// SLAHandler exposes deadline evaluation endpoints.
type SLAHandler struct {
	service *service.SLAService
	logger  *zap.Logger
}

// NewSLAHandler constructs handler.
func NewSLAHandler(slaService *service.SLAService, logger *zap.Logger) *SLAHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SLAHandler{service: slaService, logger: logger}
}

// Summary GET /sla/summary.
func (h *SLAHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.service.DashboardSummary(c.UserContext(), time.Now().UTC())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}

// Badge GET /requests/:id/sla/badge.
func (h *SLAHandler) Badge(c *fiber.Ctx) error {
	badge, err := h.service.Badge(c.UserContext(), c.Params("id"), time.Now().UTC())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": badge})
}

// Violations GET /sla/violations.
func (h *SLAHandler) Violations(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	audits, err := h.service.RecentViolations(c.UserContext(), limit)
	if err != nil {
		return err
	}
	items := make([]dto.ViolationResponse, 0, len(audits))
	for _, audit := range audits {
		items = append(items, dto.ViolationResponse{
			ID:             audit.ID,
			RequestID:      audit.Violation.RequestID,
			ViolationType:  audit.Violation.Type,
			DueDate:        audit.Violation.DueDate,
			MinutesOverdue: audit.Violation.MinutesOverdue,
			Priority:       audit.Violation.Priority,
			WorkflowStage:  audit.Violation.WorkflowStage,
			DetectedAt:     audit.DetectedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Sweep POST /sla/sweep triggers a manual evaluation pass.
func (h *SLAHandler) Sweep(c *fiber.Ctx) error {
	result, err := h.service.Sweep(c.UserContext(), time.Now().UTC())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": result})
}

// Evaluate POST /sla/evaluate classifies an ad-hoc snapshot without touching
// storage. Unparseable deadlines are reported as warnings and treated as
// absent, never failing the batch.
func (h *SLAHandler) Evaluate(c *fiber.Ctx) error {
	var req dto.EvaluateSnapshotRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if len(req.Requests) == 0 {
		return apperrors.NewValidationError("requests required", nil)
	}

	now := time.Now().UTC()
	if req.Now != "" {
		parsed, err := time.Parse(time.RFC3339, req.Now)
		if err != nil {
			return apperrors.NewValidationError("invalid now timestamp", map[string]any{"now": req.Now})
		}
		now = parsed.UTC()
	}

	var warnings []string
	requests := make([]domain.MaintenanceRequest, 0, len(req.Requests))
	for _, item := range req.Requests {
		if item.ID == "" {
			return apperrors.NewValidationError("request id required", nil)
		}
		request := domain.MaintenanceRequest{
			ID:            item.ID,
			Priority:      domain.RequestPriority(item.Priority),
			WorkflowStage: domain.WorkflowStage(item.WorkflowStage),
			Status:        domain.RequestStatus(item.Status),
		}
		request.SLAAcceptDue = parseDeadline(h.logger, &warnings, item.ID, "sla_accept_due", item.SLAAcceptDue)
		request.SLAArriveDue = parseDeadline(h.logger, &warnings, item.ID, "sla_arrive_due", item.SLAArriveDue)
		request.SLACompleteDue = parseDeadline(h.logger, &warnings, item.ID, "sla_complete_due", item.SLACompleteDue)
		requests = append(requests, request)
	}

	result := sla.Evaluate(requests, now)
	return c.JSON(fiber.Map{"data": dto.EvaluateSnapshotResponse{
		Summary:    result.Summary,
		Violations: result.Violations,
		Warnings:   warnings,
	}})
}

func parseDeadline(logger *zap.Logger, warnings *[]string, requestID, field, value string) *time.Time {
	due, err := sla.ParseDue(value)
	if err != nil {
		logger.Warn("unparseable deadline treated as absent",
			zap.String("request_id", requestID),
			zap.String("field", field),
			zap.String("value", value))
		*warnings = append(*warnings, requestID+": "+field+" unparseable, treated as absent")
		return nil
	}
	return due
}
