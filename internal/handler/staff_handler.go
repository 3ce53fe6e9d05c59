package handler

import (
	"github.com/narendrababuts/AutoShopPro/internal/middleware"
	"github.com/narendrababuts/AutoShopPro/internal/model"
	"github.com/narendrababuts/AutoShopPro/internal/repository"
	"github.com/narendrababuts/AutoShopPro/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type StaffHandler struct {
	repo repository.StaffRepository
}

func NewStaffHandler(repo repository.StaffRepository) *StaffHandler {
	return &StaffHandler{repo: repo}
}

func (h *StaffHandler) List(c *fiber.Ctx) error {
	staff, err := h.repo.FindAll(middleware.GarageID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch staff"})
	}
	return c.JSON(staff)
}

func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var staff model.Staff
	if err := c.BodyParser(&staff); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&staff); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Staff name is required"})
	}

	staff.GarageID = middleware.GarageID(c)
	staff.CreatedBy = getUserID(c)
	staff.UpdatedBy = getUserID(c)

	if err := h.repo.Create(&staff); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create staff"})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Staff created", "data": staff})
}
