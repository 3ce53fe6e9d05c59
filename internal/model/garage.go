package model

// Garage is the tenant root. Every other entity carries a GarageID and
// every query is scoped to it; cross-garage references are not permitted.
type Garage struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Address string `gorm:"type:text" json:"address"`
	Phone   string `gorm:"type:varchar(20)" json:"phone"`
}
