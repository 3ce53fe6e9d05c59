package handler

import (
	"strconv"

	"github.com/narendrababuts/AutoShopPro/internal/middleware"
	"github.com/narendrababuts/AutoShopPro/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetMetrics returns the cached dashboard metrics, refreshing stale sections.
func (h *DashboardHandler) GetMetrics(c *fiber.Ctx) error {
	metrics, err := h.service.GetMetrics(middleware.GarageID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(metrics)
}

// RecentJobCards returns the latest cards for the dashboard list.
// Query params: limit (default 100)
func (h *DashboardHandler) RecentJobCards(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}

	cards, err := h.service.RecentJobCards(middleware.GarageID(c), limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(cards)
}
