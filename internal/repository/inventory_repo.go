package repository

import (
	"github.com/narendrababuts/AutoShopPro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryRepository interface {
	Create(item *model.InventoryItem) error
	FindAll(garageID uuid.UUID) ([]model.InventoryItem, error)
	FindByID(garageID, id uuid.UUID) (*model.InventoryItem, error)
	FindLowStock(garageID uuid.UUID) ([]model.InventoryItem, error)
	Update(item *model.InventoryItem) (int64, error)
	// UpdateQuantity writes the new stock level scoped by id + garage id.
	UpdateQuantity(garageID, id uuid.UUID, quantity int) error
	Delete(garageID, id uuid.UUID) error
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db}
}

func (r *inventoryRepo) Create(item *model.InventoryItem) error {
	return r.db.Create(item).Error
}

func (r *inventoryRepo) FindAll(garageID uuid.UUID) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.Where("garage_id = ?", garageID).Order("item_name").Find(&items).Error
	return items, err
}

func (r *inventoryRepo) FindByID(garageID, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.First(&item, "id = ? AND garage_id = ?", id, garageID).Error
	return &item, err
}

func (r *inventoryRepo) FindLowStock(garageID uuid.UUID) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.
		Where("garage_id = ? AND quantity <= min_stock_level", garageID).
		Order("quantity").
		Find(&items).Error
	return items, err
}

func (r *inventoryRepo) Update(item *model.InventoryItem) (int64, error) {
	res := r.db.Model(&model.InventoryItem{}).
		Where("id = ? AND garage_id = ?", item.ID, item.GarageID).
		Select("item_name", "quantity", "min_stock_level", "unit_price", "supplier", "updated_by").
		Updates(item)
	return res.RowsAffected, res.Error
}

func (r *inventoryRepo) UpdateQuantity(garageID, id uuid.UUID, quantity int) error {
	return r.db.Model(&model.InventoryItem{}).
		Where("id = ? AND garage_id = ?", id, garageID).
		Update("quantity", quantity).Error
}

func (r *inventoryRepo) Delete(garageID, id uuid.UUID) error {
	return r.db.Where("garage_id = ?", garageID).Delete(&model.InventoryItem{}, "id = ?", id).Error
}
