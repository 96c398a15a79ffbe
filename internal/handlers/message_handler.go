package handlers

import (
	"time"

	"github.com/emberwall/emberwall-backend/internal/dto"
	"github.com/emberwall/emberwall-backend/internal/middleware"
	"github.com/emberwall/emberwall-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MessageHandler struct {
	messages *services.MessageService
}

func NewMessageHandler(messages *services.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// Create handles POST /api/messages.
func (h *MessageHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("Invalid request body"))
	}

	msg, err := h.messages.Post(c.UserContext(), middleware.ClientAddr(c), req.Nickname, req.Message)
	if err != nil {
		return respondPipelineError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.OK(dto.NewMessageView(msg, time.Now().UTC())))
}

// List handles GET /api/messages.
func (h *MessageHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	skip := c.QueryInt("skip", 0)

	messages, total, err := h.messages.List(c.UserContext(), limit, skip)
	if err != nil {
		return respondPipelineError(c, err)
	}

	now := time.Now().UTC()
	views := make([]dto.MessageView, len(messages))
	for i := range messages {
		views[i] = dto.NewMessageView(&messages[i], now)
	}

	return c.JSON(dto.SuccessResponse{
		Success: true,
		Data:    views,
		Meta:    &dto.Meta{Total: total, Returned: len(views)},
	})
}

// GetByID handles GET /api/messages/:id.
func (h *MessageHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("Invalid message ID"))
	}

	msg, err := h.messages.GetByID(c.UserContext(), id)
	if err != nil {
		return respondPipelineError(c, err)
	}

	return c.JSON(dto.OK(dto.NewMessageView(msg, time.Now().UTC())))
}
