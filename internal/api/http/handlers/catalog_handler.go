package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// CatalogHandler serves the flat catalogs: job titles, problem types,
// statuses and departments. Each method is bound to one catalog kind.
type CatalogHandler struct {
	catalog     *service.CatalogService
	specialists *service.SpecialistService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalog *service.CatalogService, specialists *service.SpecialistService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, specialists: specialists}
}

// List GET /<catalog>.
func (h *CatalogHandler) List(kind domain.CatalogKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := h.catalog.List(c.UserContext(), kind)
		if err != nil {
			return err
		}
		items := make([]dto.CatalogEntryResponse, 0, len(entries))
		for _, entry := range entries {
			items = append(items, catalogEntryResponse(entry))
		}
		return c.JSON(fiber.Map{"data": items})
	}
}

// Get GET /<catalog>/:id.
func (h *CatalogHandler) Get(kind domain.CatalogKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}
		entry, err := h.catalog.Get(c.UserContext(), kind, id)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": catalogEntryResponse(*entry)})
	}
}

// Lookup GET /<catalog>/lookup?name=.
func (h *CatalogHandler) Lookup(kind domain.CatalogKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := strings.TrimSpace(c.Query("name"))
		if name == "" {
			return apperrors.NewValidationError("name query parameter required", nil)
		}
		id, err := h.catalog.FindID(c.UserContext(), kind, name)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": dto.CatalogLookupResponse{ID: id}})
	}
}

// Create POST /<catalog>.
func (h *CatalogHandler) Create(kind domain.CatalogKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.CatalogEntryRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}
		entry, err := h.catalog.Create(c.UserContext(), kind, req.Name)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": catalogEntryResponse(*entry)})
	}
}

// Rename PUT /<catalog>/:id.
func (h *CatalogHandler) Rename(kind domain.CatalogKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}
		var req dto.CatalogEntryRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}
		entry, err := h.catalog.Rename(c.UserContext(), kind, id, req.Name)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": catalogEntryResponse(*entry)})
	}
}

// Delete DELETE /<catalog>/:id.
func (h *CatalogHandler) Delete(kind domain.CatalogKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}
		if err := h.catalog.Delete(c.UserContext(), kind, id); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Resolvers GET /problem-types/:id/resolvers.
func (h *CatalogHandler) Resolvers(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	specialists, err := h.specialists.ListResolvers(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": specialistResponses(specialists)})
}

func catalogEntryResponse(entry domain.CatalogEntry) dto.CatalogEntryResponse {
	return dto.CatalogEntryResponse{ID: entry.ID, Name: entry.Name}
}
