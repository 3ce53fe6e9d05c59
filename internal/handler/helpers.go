package handler

import (
	"errors"

	"github.com/narendrababuts/AutoShopPro/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helpers to pull user info from the JWT context (set by auth middleware)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system"
	}
	return userID.(string)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
func respondServiceError(c *fiber.Ctx, err error) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return c.Status(400).JSON(fiber.Map{
			"error":      verr.Error(),
			"violations": verr.Violations,
		})
	}
	if errors.Is(err, service.ErrSaveInProgress) {
		return c.Status(409).JSON(fiber.Map{"error": "A save is already in progress for this job card"})
	}
	if errors.Is(err, service.ErrNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "Record not found"})
	}
	if errors.Is(err, service.ErrNoGarage) {
		return c.Status(403).JSON(fiber.Map{"error": "No garage selected"})
	}
	var perr *service.PersistenceError
	if errors.As(err, &perr) {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save. Please try again."})
	}
	return c.Status(400).JSON(fiber.Map{"error": err.Error()})
}
