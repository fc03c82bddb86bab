package handlers

import (
	"context"
	"time"

	"productapi/internal/services"

	"github.com/gofiber/fiber/v2"
)

const healthPingTimeout = 2 * time.Second

// HealthHandler reports process and store health.
type HealthHandler struct {
	service *services.ProductService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(service *services.ProductService) *HealthHandler {
	return &HealthHandler{service: service}
}

// RegisterRoutes registers GET /health.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

// HandleHealth answers 200 while the store is reachable and 503 otherwise.
// The process keeps serving in both cases.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthPingTimeout)
	defer cancel()

	if err := h.service.Ping(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"store":  "unavailable",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
	return c.JSON(fiber.Map{
		"status": "healthy",
		"store":  "connected",
		"time":   time.Now().Format(time.RFC3339),
	})
}
