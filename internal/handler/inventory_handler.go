package handler

import (
	"github.com/narendrababuts/AutoShopPro/internal/middleware"
	"github.com/narendrababuts/AutoShopPro/internal/model"
	"github.com/narendrababuts/AutoShopPro/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var item model.InventoryItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateItem(middleware.GarageID(c), &item, getUserID(c)); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Inventory item added", "data": item})
}

func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var item model.InventoryItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateItem(middleware.GarageID(c), id, &item, getUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Inventory item updated", "data": updated})
}

func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	if err := h.service.DeleteItem(middleware.GarageID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Inventory item deleted"})
}

func (h *InventoryHandler) List(c *fiber.Ctx) error {
	items, err := h.service.GetAllItems(middleware.GarageID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(items)
}

// LowStock feeds the dashboard inventory alerts card.
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.service.GetLowStockItems(middleware.GarageID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(items)
}
