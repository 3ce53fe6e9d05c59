package model

import "github.com/google/uuid"

// InventoryItem is a stocked part. Quantity never goes below zero; the
// deduction path clamps instead of failing.
type InventoryItem struct {
	BaseModel
	GarageID      uuid.UUID `gorm:"type:uuid;index;not null" json:"garage_id"`
	ItemName      string    `gorm:"type:varchar(255);not null" json:"item_name" validate:"required"`
	Quantity      int       `gorm:"default:0" json:"quantity" validate:"gte=0"`
	MinStockLevel int       `gorm:"default:10" json:"min_stock_level" validate:"gte=0"`
	UnitPrice     float64   `gorm:"default:0" json:"unit_price" validate:"gt=0"`
	Supplier      string    `gorm:"type:varchar(255)" json:"supplier"`
}

// LowStock reports whether the item is at or below its reorder threshold.
func (i InventoryItem) LowStock() bool {
	return i.Quantity <= i.MinStockLevel
}
