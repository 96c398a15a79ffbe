package routes

import (
	"time"

	"github.com/emberwall/emberwall-backend/internal/config"
	"github.com/emberwall/emberwall-backend/internal/handlers"
	"github.com/emberwall/emberwall-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	messageHandler *handlers.MessageHandler,
	reportHandler *handlers.ReportHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP. The per-identity posting
	// and reporting windows are enforced separately inside the services.
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Messages (public, anonymous)
	api.Post("/messages", messageHandler.Create)
	api.Get("/messages", messageHandler.List)
	api.Get("/messages/:id", messageHandler.GetByID)

	// Reports (public, anonymous)
	api.Post("/reports", reportHandler.Create)

	// Admin moderation panel (token required)
	admin := api.Group("/admin", middleware.AdminRequired(cfg))
	admin.Get("/reports", adminHandler.ListReports)
	admin.Put("/reports/:id", adminHandler.ReviewReport)
}
