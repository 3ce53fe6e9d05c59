package handler

import (
	"errors"

	"github.com/narendrababuts/AutoShopPro/internal/middleware"
	"github.com/narendrababuts/AutoShopPro/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SettingsHandler exposes the per-garage key/value rows (invoice PDF
// settings, device registry). Thin enough to sit straight on the repo.
type SettingsHandler struct {
	repo repository.SettingRepository
}

func NewSettingsHandler(repo repository.SettingRepository) *SettingsHandler {
	return &SettingsHandler{repo: repo}
}

func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	key := c.Params("key")
	setting, err := h.repo.Get(middleware.GarageID(c), key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Setting not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch setting"})
	}
	return c.JSON(setting)
}

type upsertSettingRequest struct {
	SettingValue string `json:"setting_value"`
}

func (h *SettingsHandler) Upsert(c *fiber.Ctx) error {
	key := c.Params("key")
	var req upsertSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.repo.Upsert(middleware.GarageID(c), key, req.SettingValue); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save setting"})
	}
	return c.JSON(fiber.Map{"message": "Setting saved"})
}
