package handlers

import (
	"github.com/emberwall/emberwall-backend/internal/dto"
	"github.com/emberwall/emberwall-backend/internal/middleware"
	"github.com/emberwall/emberwall-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Create handles POST /api/reports.
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("Invalid request body"))
	}

	if err := h.reports.Submit(c.UserContext(), middleware.ClientAddr(c), req.MessageID, req.Reason); err != nil {
		return respondPipelineError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{Success: true})
}
