package service

import (
	"errors"
	"fmt"

	"github.com/narendrababuts/AutoShopPro/internal/model"
	"github.com/narendrababuts/AutoShopPro/internal/repository"
	"github.com/narendrababuts/AutoShopPro/internal/ws"
	"github.com/narendrababuts/AutoShopPro/pkg/validator"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type InventoryService interface {
	CreateItem(garageID uuid.UUID, item *model.InventoryItem, userID string) error
	UpdateItem(garageID, id uuid.UUID, item *model.InventoryItem, userID string) (*model.InventoryItem, error)
	DeleteItem(garageID, id uuid.UUID) error
	GetAllItems(garageID uuid.UUID) ([]model.InventoryItem, error)
	GetLowStockItems(garageID uuid.UUID) ([]model.InventoryItem, error)
	AdjustForParts(garageID uuid.UUID, parts []model.JobCardPart, jobCardID uuid.UUID) []string
}

type inventoryService struct {
	repo  repository.InventoryRepository
	wsHub *ws.Hub
}

func NewInventoryService(repo repository.InventoryRepository, hub *ws.Hub) InventoryService {
	return &inventoryService{repo: repo, wsHub: hub}
}

func (s *inventoryService) CreateItem(garageID uuid.UUID, item *model.InventoryItem, userID string) error {
	if garageID == uuid.Nil {
		return ErrNoGarage
	}
	if err := validator.CheckStruct(item); err != nil {
		return err
	}

	item.GarageID = garageID
	item.CreatedBy = userID
	item.UpdatedBy = userID

	if err := s.repo.Create(item); err != nil {
		return &PersistenceError{Op: "create inventory item", Err: err}
	}

	s.wsHub.Notify(ws.Event{
		GarageID: garageID,
		Table:    "inventory",
		Action:   "created",
		Payload:  map[string]interface{}{"id": item.ID, "item_name": item.ItemName},
	})
	return nil
}

func (s *inventoryService) UpdateItem(garageID, id uuid.UUID, item *model.InventoryItem, userID string) (*model.InventoryItem, error) {
	if garageID == uuid.Nil {
		return nil, ErrNoGarage
	}
	if err := validator.CheckStruct(item); err != nil {
		return nil, err
	}

	item.ID = id
	item.GarageID = garageID
	item.UpdatedBy = userID

	rows, err := s.repo.Update(item)
	if err != nil {
		return nil, &PersistenceError{Op: "update inventory item", Err: err}
	}
	if rows == 0 {
		return nil, ErrNotFound
	}

	updated, err := s.repo.FindByID(garageID, id)
	if err != nil {
		return nil, err
	}

	s.wsHub.Notify(ws.Event{
		GarageID: garageID,
		Table:    "inventory",
		Action:   "updated",
		Payload:  map[string]interface{}{"id": id, "item_name": updated.ItemName, "quantity": updated.Quantity},
	})
	return updated, nil
}

func (s *inventoryService) DeleteItem(garageID, id uuid.UUID) error {
	if garageID == uuid.Nil {
		return ErrNoGarage
	}
	if err := s.repo.Delete(garageID, id); err != nil {
		return &PersistenceError{Op: "delete inventory item", Err: err}
	}
	s.wsHub.Notify(ws.Event{
		GarageID: garageID,
		Table:    "inventory",
		Action:   "deleted",
		Payload:  map[string]interface{}{"id": id},
	})
	return nil
}

func (s *inventoryService) GetAllItems(garageID uuid.UUID) ([]model.InventoryItem, error) {
	if garageID == uuid.Nil {
		return nil, ErrNoGarage
	}
	return s.repo.FindAll(garageID)
}

func (s *inventoryService) GetLowStockItems(garageID uuid.UUID) ([]model.InventoryItem, error) {
	if garageID == uuid.Nil {
		return nil, ErrNoGarage
	}
	return s.repo.FindLowStock(garageID)
}

// AdjustForParts deducts consumed stock after a job-card save, best effort
// per item. Each warning names an item whose write-back failed; fetch
// failures and cross-garage rows are skipped silently (logged only).
//
// This is deliberately not a transaction: the fetch and the write-back can
// race with a concurrent save against the same row and lose an update. The
// job card remains the source of truth for billing; stock accuracy here is
// best effort.
func (s *inventoryService) AdjustForParts(garageID uuid.UUID, parts []model.JobCardPart, jobCardID uuid.UUID) []string {
	var warnings []string

	for _, part := range parts {
		if !part.Eligible() {
			continue
		}

		invID, err := uuid.Parse(part.InventoryID)
		if err != nil {
			log.WithFields(log.Fields{"inventory_id": part.InventoryID, "part": part.Name}).
				Warn("part carries malformed inventory id, skipping deduction")
			continue
		}

		item, err := s.repo.FindByID(garageID, invID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.WithError(err).WithField("inventory_id", invID).
					Error("failed to fetch inventory item for deduction")
			}
			continue
		}

		// Defense in depth: a stale client can hand us an id from another
		// garage. Never touch a row we don't own.
		if item.GarageID != garageID {
			log.WithFields(log.Fields{
				"inventory_id": invID,
				"item_garage":  item.GarageID,
				"caller":       garageID,
			}).Error("security violation: inventory row belongs to a different garage")
			continue
		}

		consumed := int(part.Quantity)
		newQuantity := item.Quantity - consumed
		if newQuantity < 0 {
			// Over-consumption is absorbed; stock never goes negative.
			newQuantity = 0
		}

		if err := s.repo.UpdateQuantity(garageID, invID, newQuantity); err != nil {
			log.WithError(err).WithField("item", item.ItemName).
				Error("failed to write back deducted quantity")
			warnings = append(warnings, fmt.Sprintf("Failed to update stock for %s", item.ItemName))
			continue
		}

		log.WithFields(log.Fields{
			"item":        item.ItemName,
			"deducted":    consumed,
			"new_stock":   newQuantity,
			"job_card_id": jobCardID,
		}).Info("inventory quantity deducted")

		s.wsHub.Notify(ws.Event{
			GarageID: garageID,
			Table:    "inventory",
			Action:   "quantity_deducted",
			Payload: map[string]interface{}{
				"id":        invID,
				"item_name": item.ItemName,
				"quantity":  newQuantity,
			},
		})
	}

	return warnings
}
