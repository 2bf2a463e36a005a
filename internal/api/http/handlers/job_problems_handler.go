package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// JobProblemsHandler manages job title / problem type pairs.
type JobProblemsHandler struct {
	service *service.JobProblemService
}

// NewJobProblemsHandler constructs handler.
func NewJobProblemsHandler(jobProblems *service.JobProblemService) *JobProblemsHandler {
	return &JobProblemsHandler{service: jobProblems}
}

// Create POST /job-problems.
func (h *JobProblemsHandler) Create(c *fiber.Ctx) error {
	var req dto.JobProblemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	pair, err := h.service.Create(c.UserContext(), req.JobTitle, req.ProblemType)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": jobProblemResponse(pair)})
}

// List GET /job-problems.
func (h *JobProblemsHandler) List(c *fiber.Ctx) error {
	pairs, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.JobProblemResponse, 0, len(pairs))
	for i := range pairs {
		items = append(items, jobProblemResponse(&pairs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /job-problems/:id.
func (h *JobProblemsHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	pair, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobProblemResponse(pair)})
}

// Update PUT /job-problems/:id.
func (h *JobProblemsHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.JobProblemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	pair, err := h.service.Update(c.UserContext(), id, req.JobTitle, req.ProblemType)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobProblemResponse(pair)})
}

// Delete DELETE /job-problems/:id.
func (h *JobProblemsHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func jobProblemResponse(pair *domain.JobProblem) dto.JobProblemResponse {
	resp := dto.JobProblemResponse{ID: pair.ID}
	if pair.JobTitle != nil {
		entry := catalogEntryResponse(*pair.JobTitle)
		resp.JobTitle = &entry
	}
	if pair.ProblemType != nil {
		entry := catalogEntryResponse(*pair.ProblemType)
		resp.ProblemType = &entry
	}
	return resp
}
