package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// DirectoryHandler manages offices and workers.
type DirectoryHandler struct {
	service *service.DirectoryService
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(directory *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: directory}
}

// CreateOffice POST /offices.
func (h *DirectoryHandler) CreateOffice(c *fiber.Ctx) error {
	var req dto.OfficeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	office, err := h.service.CreateOffice(c.UserContext(), officeFromRequest(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": officeResponse(office)})
}

// ListOffices GET /offices.
func (h *DirectoryHandler) ListOffices(c *fiber.Ctx) error {
	offices, err := h.service.ListOffices(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.OfficeResponse, 0, len(offices))
	for i := range offices {
		items = append(items, officeResponse(&offices[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetOffice GET /offices/:id.
func (h *DirectoryHandler) GetOffice(c *fiber.Ctx) error {
	number, err := paramID(c, "id")
	if err != nil {
		return err
	}
	office, err := h.service.GetOffice(c.UserContext(), number)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": officeResponse(office)})
}

// UpdateOffice PUT /offices/:id.
func (h *DirectoryHandler) UpdateOffice(c *fiber.Ctx) error {
	number, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.OfficeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	office, err := h.service.UpdateOffice(c.UserContext(), number, officeFromRequest(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": officeResponse(office)})
}

// DeleteOffice DELETE /offices/:id.
func (h *DirectoryHandler) DeleteOffice(c *fiber.Ctx) error {
	number, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteOffice(c.UserContext(), number); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateWorker POST /workers.
func (h *DirectoryHandler) CreateWorker(c *fiber.Ctx) error {
	var req dto.WorkerRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	worker, err := h.service.CreateWorker(c.UserContext(), workerFromRequest(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": workerResponse(worker)})
}

// ListWorkers GET /workers.
func (h *DirectoryHandler) ListWorkers(c *fiber.Ctx) error {
	workers, err := h.service.ListWorkers(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.WorkerResponse, 0, len(workers))
	for i := range workers {
		items = append(items, workerResponse(&workers[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetWorker GET /workers/:id.
func (h *DirectoryHandler) GetWorker(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	worker, err := h.service.GetWorker(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": workerResponse(worker)})
}

// UpdateWorker PUT /workers/:id.
func (h *DirectoryHandler) UpdateWorker(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.WorkerRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	worker, err := h.service.UpdateWorker(c.UserContext(), id, workerFromRequest(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": workerResponse(worker)})
}

// DeleteWorker DELETE /workers/:id.
func (h *DirectoryHandler) DeleteWorker(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteWorker(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func officeFromRequest(req dto.OfficeRequest) domain.Office {
	return domain.Office{Number: req.Number, Name: req.Name, Housing: req.Housing, Floor: req.Floor}
}

func officeResponse(o *domain.Office) dto.OfficeResponse {
	return dto.OfficeResponse{Number: o.Number, Name: o.Name, Housing: o.Housing, Floor: o.Floor}
}

func workerFromRequest(req dto.WorkerRequest) domain.Worker {
	return domain.Worker{Name: req.Name, Number: req.Number, DepartmentID: req.DepartmentID}
}

func workerResponse(w *domain.Worker) dto.WorkerResponse {
	return dto.WorkerResponse{
		ID:             w.ID,
		Name:           w.Name,
		Number:         w.Number,
		DepartmentID:   w.DepartmentID,
		DepartmentName: w.DepartmentName,
	}
}
