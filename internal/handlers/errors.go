package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/emberwall/emberwall-backend/internal/dto"
	"github.com/emberwall/emberwall-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// respondPipelineError maps service errors onto the HTTP taxonomy. Expired
// and hidden targets get the same 404 as nonexistent ones. Anything
// unrecognized becomes a 500 with a generic body.
func respondPipelineError(c *fiber.Ctx, err error) error {
	var validation *services.ValidationError
	if errors.As(err, &validation) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err(validation.Msg))
	}

	var limited *services.RateLimitError
	if errors.As(err, &limited) {
		c.Set("Retry-After", strconv.Itoa(int(limited.RetryAfter.Seconds())))
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.Err("Too many requests. Please wait before trying again."))
	}

	switch {
	case errors.Is(err, services.ErrProhibitedContent):
		return c.Status(fiber.StatusUnavailableForLegalReasons).JSON(dto.Err("Message contains prohibited content"))
	case errors.Is(err, services.ErrTooManySpecialChars):
		return c.Status(fiber.StatusUnavailableForLegalReasons).JSON(dto.Err("Message contains too many special characters"))
	case errors.Is(err, services.ErrMessageNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Err("Message not found or expired"))
	case errors.Is(err, services.ErrReportNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Err("Report not found"))
	case errors.Is(err, services.ErrDuplicateReport):
		return c.Status(fiber.StatusConflict).JSON(dto.Err("You have already reported this message"))
	}

	slog.Error("pipeline error", "route", c.Path(), "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Err("Internal server error"))
}
