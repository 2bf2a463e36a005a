package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// RequestsHandler manages the support request lifecycle.
type RequestsHandler struct {
	requests    *service.RequestService
	assignments *service.AssignmentService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requests *service.RequestService, assignments *service.AssignmentService) *RequestsHandler {
	return &RequestsHandler{requests: requests, assignments: assignments}
}

// Create POST /requests.
func (h *RequestsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRequestRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.ProblemTypeID <= 0 {
		return apperrors.NewValidationError("problem_type_id required", nil)
	}
	request, err := h.requests.Create(c.UserContext(), req.ProblemTypeID, req.Description)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": requestResponse(request)})
}

// List GET /requests.
func (h *RequestsHandler) List(c *fiber.Ctx) error {
	requests, err := h.requests.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponses(requests)})
}

// Get GET /requests/:id.
func (h *RequestsHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	request, err := h.requests.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponse(request)})
}

// UpdateStatus PUT /requests/:id.
func (h *RequestsHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateRequestStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.StatusID <= 0 {
		return apperrors.NewValidationError("status_id required", nil)
	}
	request, err := h.requests.UpdateStatus(c.UserContext(), id, domain.StatusUpdate{
		StatusID:    req.StatusID,
		Description: req.Description,
		AcceptedAt:  req.AcceptedAt,
		CompletedAt: req.CompletedAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponse(request)})
}

// Assign PUT /requests/:id/assignment.
func (h *RequestsHandler) Assign(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.AssignRequestRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	request, err := h.assignments.AssignRequest(c.UserContext(), id, req.SpecialistID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponse(request)})
}

// Delete DELETE /requests/:id.
func (h *RequestsHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.requests.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func requestResponse(req *domain.Request) dto.RequestResponse {
	return dto.RequestResponse{
		ID:            req.ID,
		ProblemTypeID: req.ProblemTypeID,
		SpecialistID:  req.SpecialistID,
		StatusID:      req.StatusID,
		Description:   req.Description,
		SentAt:        req.SentAt,
		AcceptedAt:    req.AcceptedAt,
		CompletedAt:   req.CompletedAt,
	}
}

func requestResponses(requests []domain.Request) []dto.RequestResponse {
	items := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, requestResponse(&requests[i]))
	}
	return items
}
