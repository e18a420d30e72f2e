package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/services"
)

type DashboardHandler struct {
	service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) RegisterRoutes(router fiber.Router, g Guards) {
	router.Get("/dashboard/stats", g.Authenticated, g.Admin, h.HandleStats)
}

func (h *DashboardHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return fail(err, "Failed to fetch dashboard stats")
	}
	return c.JSON(stats)
}
