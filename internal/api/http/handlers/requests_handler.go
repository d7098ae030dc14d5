package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mohamedazab224/uberfix-maintenance-service/internal/api/dto"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/domain"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/repository"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/service"
	apperrors "github.com/mohamedazab224/uberfix-maintenance-service/pkg/util"
)

// RequestsHandler manages maintenance request endpoints.
type RequestsHandler struct {
	service *service.RequestService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requestService *service.RequestService) *RequestsHandler {
	return &RequestsHandler{service: requestService}
}

// Create POST /requests.
func (h *RequestsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.PropertyID == "" || req.RequesterID == "" || req.Title == "" {
		return apperrors.NewValidationError("property_id, requester_id, title required", nil)
	}

	request, err := h.service.Create(c.UserContext(), service.RequestCreateInput{
		PropertyID:  req.PropertyID,
		RequesterID: req.RequesterID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewRequestSummary(request)})
}

// List GET /requests.
func (h *RequestsHandler) List(c *fiber.Ctx) error {
	filter := parseRequestQuery(c)
	requests, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.RequestSummary, 0, len(requests))
	for i := range requests {
		items = append(items, dto.NewRequestSummary(&requests[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /requests/:id.
func (h *RequestsHandler) Get(c *fiber.Ctx) error {
	request, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestDetail(request)})
}

// Assign POST /requests/:id/assign.
func (h *RequestsHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.TechnicianID) == "" {
		return apperrors.NewValidationError("technician_id required", nil)
	}
	request, err := h.service.Assign(c.UserContext(), c.Params("id"), req.TechnicianID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestSummary(request)})
}

// Start POST /requests/:id/start.
func (h *RequestsHandler) Start(c *fiber.Ctx) error {
	request, err := h.service.Start(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestSummary(request)})
}

// Complete POST /requests/:id/complete.
func (h *RequestsHandler) Complete(c *fiber.Ctx) error {
	request, err := h.service.Complete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestSummary(request)})
}

// Cancel POST /requests/:id/cancel.
func (h *RequestsHandler) Cancel(c *fiber.Ctx) error {
	request, err := h.service.Cancel(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestSummary(request)})
}

func parseRequestQuery(c *fiber.Ctx) repository.RequestFilter {
	filter := repository.RequestFilter{}

	if v := c.Query("property_id"); v != "" {
		filter.PropertyID = &v
	}
	if v := c.Query("technician_id"); v != "" {
		filter.TechnicianID = &v
	}
	if v := c.Query("stage"); v != "" {
		for _, stage := range strings.Split(v, ",") {
			filter.Stages = append(filter.Stages, domain.WorkflowStage(strings.ToUpper(strings.TrimSpace(stage))))
		}
	}
	if v := c.Query("status"); v != "" {
		for _, status := range strings.Split(v, ",") {
			filter.Statuses = append(filter.Statuses, domain.RequestStatus(strings.TrimSpace(status)))
		}
	}
	if v := c.Query("priority"); v != "" {
		for _, pr := range strings.Split(v, ",") {
			filter.Priorities = append(filter.Priorities, domain.RequestPriority(strings.TrimSpace(pr)))
		}
	}
	if v := c.Query("search"); v != "" {
		filter.SearchTerm = &v
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize
	return filter
}
