package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// SpecialistsHandler manages specialists and their workload.
type SpecialistsHandler struct {
	specialists *service.SpecialistService
	requests    *service.RequestService
}

// NewSpecialistsHandler constructs handler.
func NewSpecialistsHandler(specialists *service.SpecialistService, requests *service.RequestService) *SpecialistsHandler {
	return &SpecialistsHandler{specialists: specialists, requests: requests}
}

// Create POST /specialists.
func (h *SpecialistsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSpecialistRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	specialist, err := h.specialists.Create(c.UserContext(), service.SpecialistCreateInput{
		JobTitleID: req.JobTitleID,
		Name:       req.Name,
		Number:     req.Number,
		Mail:       req.Mail,
		Login:      req.Login,
		Password:   req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": specialistResponse(specialist)})
}

// List GET /specialists.
func (h *SpecialistsHandler) List(c *fiber.Ctx) error {
	specialists, err := h.specialists.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": specialistResponses(specialists)})
}

// Get GET /specialists/:id.
func (h *SpecialistsHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	specialist, err := h.specialists.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": specialistResponse(specialist)})
}

// Delete DELETE /specialists/:id.
func (h *SpecialistsHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.specialists.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Requests GET /specialists/:id/requests.
func (h *SpecialistsHandler) Requests(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	result, err := h.requests.ListBySpecialist(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SpecialistRequestsResponse{
		SpecialistName: result.SpecialistName,
		Requests:       requestResponses(result.Requests),
	}})
}

// JobTitle GET /specialists/:id/job-title.
func (h *SpecialistsHandler) JobTitle(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	name, err := h.specialists.JobTitleName(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SpecialistJobTitleResponse{SpecialistID: id, JobTitle: name}})
}

func specialistResponse(s *domain.Specialist) dto.SpecialistResponse {
	return dto.SpecialistResponse{
		ID:         s.ID,
		JobTitleID: s.JobTitleID,
		Name:       s.Name,
		Number:     s.Number,
		Mail:       s.Mail,
		Login:      s.Login,
	}
}

func specialistResponses(specialists []domain.Specialist) []dto.SpecialistResponse {
	items := make([]dto.SpecialistResponse, 0, len(specialists))
	for i := range specialists {
		items = append(items, specialistResponse(&specialists[i]))
	}
	return items
}
