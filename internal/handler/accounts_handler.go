package handler

import (
	"time"

	"github.com/narendrababuts/AutoShopPro/internal/middleware"
	"github.com/narendrababuts/AutoShopPro/internal/model"
	"github.com/narendrababuts/AutoShopPro/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AccountsHandler struct {
	service service.AccountsService
}

func NewAccountsHandler(s service.AccountsService) *AccountsHandler {
	return &AccountsHandler{service: s}
}

func (h *AccountsHandler) List(c *fiber.Ctx) error {
	txs, err := h.service.List(middleware.GarageID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(txs)
}

func (h *AccountsHandler) Create(c *fiber.Ctx) error {
	var tx model.Transaction
	if err := c.BodyParser(&tx); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.Record(middleware.GarageID(c), &tx, getUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Transaction recorded", "data": tx})
}

func (h *AccountsHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var tx model.Transaction
	if err := c.BodyParser(&tx); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.Update(middleware.GarageID(c), id, &tx, getUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Transaction updated"})
}

func (h *AccountsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	if err := h.service.Delete(middleware.GarageID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Transaction deleted"})
}

// Summary returns income/expense/net for a range.
// Query params: range (7d|1m|3m|6m|12m, default 1m)
func (h *AccountsHandler) Summary(c *fiber.Ctx) error {
	now := time.Now()
	var start time.Time

	switch c.Query("range", "1m") {
	case "7d":
		start = now.AddDate(0, 0, -7)
	case "1m":
		start = now.AddDate(0, -1, 0)
	case "3m":
		start = now.AddDate(0, -3, 0)
	case "6m":
		start = now.AddDate(0, -6, 0)
	case "12m":
		start = now.AddDate(0, -12, 0)
	default:
		start = now.AddDate(0, -1, 0)
	}

	summary, err := h.service.Summary(middleware.GarageID(c), start, now)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(summary)
}
