package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sojus-client/internal/backend"
)

// DashboardHandler serves the dashboard counters.
type DashboardHandler struct {
	service *backend.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard *backend.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: dashboard}
}

// Stats GET /api/dashboard/stats.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
