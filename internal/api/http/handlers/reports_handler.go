package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// ReportsHandler exposes the reporting aggregates.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reports *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reports}
}

// ResolutionTime GET /reports/resolution-time?months=1,2.
func (h *ReportsHandler) ResolutionTime(c *fiber.Ctx) error {
	months, err := service.ParseMonths(c.Query("months"))
	if err != nil {
		return err
	}
	averages, err := h.service.AverageResolutionTime(c.UserContext(), months)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": monthlyAverageResponses(averages)})
}

// HandlingTime GET /reports/handling-time?months=1,2.
func (h *ReportsHandler) HandlingTime(c *fiber.Ctx) error {
	months, err := service.ParseMonths(c.Query("months"))
	if err != nil {
		return err
	}
	averages, err := h.service.AverageHandlingTimeFromSubmission(c.UserContext(), months)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": monthlyAverageResponses(averages)})
}

// ProblemTypes GET /reports/problem-types.
func (h *ReportsHandler) ProblemTypes(c *fiber.Ctx) error {
	counts, err := h.service.CountByProblemType(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ProblemTypeCountResponse, 0, len(counts))
	for _, count := range counts {
		items = append(items, dto.ProblemTypeCountResponse{ProblemType: count.ProblemType, RequestCount: count.RequestCount})
	}
	return c.JSON(fiber.Map{"data": items})
}

// StatusByMonth GET /reports/status-by-month.
func (h *ReportsHandler) StatusByMonth(c *fiber.Ctx) error {
	counts, err := h.service.CountByStatusPerMonth(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.MonthlyStatusCountResponse, 0, len(counts))
	for _, count := range counts {
		items = append(items, dto.MonthlyStatusCountResponse{
			Year:       count.Year,
			Month:      count.Month,
			Submitted:  count.Submitted,
			InProgress: count.InProgress,
			Completed:  count.Completed,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func monthlyAverageResponses(averages []domain.MonthlyAverage) []dto.MonthlyAverageResponse {
	items := make([]dto.MonthlyAverageResponse, 0, len(averages))
	for _, avg := range averages {
		items = append(items, dto.MonthlyAverageResponse{Month: avg.Month, AverageHours: avg.AverageHours, Requests: avg.Requests})
	}
	return items
}
