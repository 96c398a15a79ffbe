package handlers

import (
	"github.com/emberwall/emberwall-backend/internal/dto"
	"github.com/emberwall/emberwall-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminHandler exposes the token-gated moderation console for listing and
// reviewing reports.
type AdminHandler struct {
	reports *services.ReportService
}

func NewAdminHandler(reports *services.ReportService) *AdminHandler {
	return &AdminHandler{reports: reports}
}

// ListReports handles GET /api/admin/reports.
func (h *AdminHandler) ListReports(c *fiber.Ctx) error {
	status := c.Query("status")
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	reports, total, err := h.reports.List(c.UserContext(), status, limit, offset)
	if err != nil {
		return respondPipelineError(c, err)
	}

	return c.JSON(dto.SuccessResponse{
		Success: true,
		Data:    reports,
		Meta:    &dto.Meta{Total: total, Returned: len(reports)},
	})
}

// ReviewReport handles PUT /api/admin/reports/:id.
func (h *AdminHandler) ReviewReport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("Invalid report ID"))
	}

	var req dto.ReviewReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("Invalid request body"))
	}

	if err := h.reports.Review(c.UserContext(), id, req.Status, req.ReviewerNote); err != nil {
		return respondPipelineError(c, err)
	}

	return c.JSON(dto.SuccessResponse{Success: true})
}
