package handlers

import (
	"time"

	"github.com/emberwall/emberwall-backend/internal/database"
	"github.com/emberwall/emberwall-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	rdb *redis.Client
}

func NewHealthHandler(rdb *redis.Client) *HealthHandler {
	return &HealthHandler{rdb: rdb}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "ok"

	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
		status = "degraded"
	}

	redisStatus := "ok"
	if h.rdb == nil {
		// The limiter fails open without Redis, so the board still serves.
		redisStatus = "disabled"
	} else if err := h.rdb.Ping(c.UserContext()).Err(); err != nil {
		redisStatus = "unhealthy: " + err.Error()
		status = "degraded"
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(dto.HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Redis:     redisStatus,
	})
}
