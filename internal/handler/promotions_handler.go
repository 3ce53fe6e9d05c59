package handler

import (
	"github.com/narendrababuts/AutoShopPro/internal/middleware"
	"github.com/narendrababuts/AutoShopPro/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PromotionsHandler struct {
	service service.PromotionsService
}

func NewPromotionsHandler(s service.PromotionsService) *PromotionsHandler {
	return &PromotionsHandler{service: s}
}

func (h *PromotionsHandler) Offers(c *fiber.Ctx) error {
	offers, err := h.service.ActiveOffers(middleware.GarageID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(offers)
}

func (h *PromotionsHandler) Customers(c *fiber.Ctx) error {
	customers, err := h.service.Customers(middleware.GarageID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(customers)
}
