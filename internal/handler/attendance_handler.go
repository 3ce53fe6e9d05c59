package handler

import (
	"github.com/narendrababuts/AutoShopPro/internal/middleware"
	"github.com/narendrababuts/AutoShopPro/internal/model"
	"github.com/narendrababuts/AutoShopPro/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AttendanceHandler struct {
	service service.AttendanceService
}

func NewAttendanceHandler(s service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: s}
}

func (h *AttendanceHandler) Recent(c *fiber.Ctx) error {
	records, err := h.service.RecentRecords(middleware.GarageID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(records)
}

func (h *AttendanceHandler) ClockIn(c *fiber.Ctx) error {
	var record model.Attendance
	if err := c.BodyParser(&record); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.ClockIn(middleware.GarageID(c), &record, getUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Attendance recorded", "data": record})
}

func (h *AttendanceHandler) ClockOut(c *fiber.Ctx) error {
	staffID, err := parseUUID(c.Params("staffId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid staff ID"})
	}

	if err := h.service.ClockOut(middleware.GarageID(c), staffID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Clocked out"})
}

func (h *AttendanceHandler) Devices(c *fiber.Ctx) error {
	devices, err := h.service.Devices(middleware.GarageID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(devices)
}

// SaveDevices replaces the registered device list.
func (h *AttendanceHandler) SaveDevices(c *fiber.Ctx) error {
	var devices []model.BiometricDevice
	if err := c.BodyParser(&devices); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.SaveDevices(middleware.GarageID(c), devices); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Devices saved", "data": devices})
}
