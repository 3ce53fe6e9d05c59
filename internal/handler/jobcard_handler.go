package handler

import (
	"github.com/narendrababuts/AutoShopPro/internal/middleware"
	"github.com/narendrababuts/AutoShopPro/internal/model"
	"github.com/narendrababuts/AutoShopPro/internal/service"

	"github.com/gofiber/fiber/v2"
)

type JobCardHandler struct {
	service service.JobCardService
}

func NewJobCardHandler(s service.JobCardService) *JobCardHandler {
	return &JobCardHandler{service: s}
}

// photoPayload is a staged photo in the save request; Data is base64 on the
// wire and decoded by the JSON codec.
type photoPayload struct {
	Data        []byte `json:"data"`
	PhotoType   string `json:"photo_type"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

type saveJobCardRequest struct {
	model.JobCard
	// ClientToken identifies the editing session for duplicate-submit
	// protection on creates.
	ClientToken string         `json:"client_token"`
	Photos      []photoPayload `json:"photos"`
}

func (r *saveJobCardRequest) stagedPhotos() []service.StagedPhoto {
	photos := make([]service.StagedPhoto, 0, len(r.Photos))
	for _, p := range r.Photos {
		photos = append(photos, service.StagedPhoto{
			Data:        p.Data,
			PhotoType:   p.PhotoType,
			FileName:    p.FileName,
			ContentType: p.ContentType,
		})
	}
	return photos
}

func (h *JobCardHandler) Create(c *fiber.Ctx) error {
	var req saveJobCardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.Save(c.Context(), middleware.GarageID(c), &req.JobCard,
		service.SaveModeCreate, req.stagedPhotos(), req.ClientToken, getUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Job card created", "data": result})
}

func (h *JobCardHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid job card ID"})
	}

	var req saveJobCardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	req.JobCard.ID = id

	result, err := h.service.Save(c.Context(), middleware.GarageID(c), &req.JobCard,
		service.SaveModeUpdate, req.stagedPhotos(), req.ClientToken, getUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Job card updated", "data": result})
}

func (h *JobCardHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid job card ID"})
	}

	card, err := h.service.Get(middleware.GarageID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(card)
}

// ListCompleted serves the invoice-generation picker: completed and
// ready-for-pickup cards, newest first.
func (h *JobCardHandler) ListCompleted(c *fiber.Ctx) error {
	cards, err := h.service.ListCompleted(middleware.GarageID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(cards)
}

func (h *JobCardHandler) StaffOptions(c *fiber.Ctx) error {
	names, err := h.service.StaffOptions(middleware.GarageID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(names)
}

func (h *JobCardHandler) Photos(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid job card ID"})
	}
	photos, err := h.service.Photos(middleware.GarageID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(photos)
}
