package model

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	StatusPending        JobStatus = "Pending"
	StatusInProgress     JobStatus = "In Progress"
	StatusPartsOrdered   JobStatus = "Parts Ordered"
	StatusReadyForPickup JobStatus = "Ready for Pickup"
	StatusCompleted      JobStatus = "Completed"
)

// PartInventoryCustom marks a part entered ad hoc, not tracked in inventory.
const PartInventoryCustom = "custom"

// JobCardPart is one part line on a job card. InventoryID is empty or
// "custom" for ad-hoc parts; only real inventory references marked in-stock
// participate in stock deduction.
type JobCardPart struct {
	InventoryID string  `json:"inventoryId"`
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	InStock     bool    `json:"inStock"`
}

// Eligible reports whether this line should deduct stock.
func (p JobCardPart) Eligible() bool {
	return p.InventoryID != "" && p.InventoryID != PartInventoryCustom && p.InStock
}

// SelectedService is a predefined service attached to a job card.
type SelectedService struct {
	ServiceName string  `json:"serviceName"`
	Price       float64 `json:"price"`
}

// JobCard is the work-order aggregate tracking a single vehicle service
// engagement. Parts and services are stored inline as jsonb, matching the
// source-of-truth-for-billing policy: the card carries everything needed to
// price the job even if inventory rows change later.
type JobCard struct {
	BaseModel
	GarageID uuid.UUID `gorm:"type:uuid;index;not null" json:"garage_id"`

	CustomerName  string `gorm:"type:varchar(255)" json:"customer_name"`
	CustomerPhone string `gorm:"type:varchar(20)" json:"customer_phone"`
	CarMake       string `gorm:"type:varchar(100)" json:"car_make"`
	CarModel      string `gorm:"type:varchar(100)" json:"car_model"`
	CarNumber     string `gorm:"type:varchar(20)" json:"car_number"`

	WorkDescription string    `gorm:"type:text" json:"work_description"`
	Status          JobStatus `gorm:"type:varchar(20);default:'Pending'" json:"status"`
	AssignedStaff   string    `gorm:"type:varchar(255)" json:"assigned_staff"`

	LaborHours      float64 `gorm:"default:0" json:"labor_hours"`
	HourlyRate      float64 `gorm:"default:0" json:"hourly_rate"`
	ManualLaborCost float64 `gorm:"default:0" json:"manual_labor_cost"`
	// TotalPrice, when positive, overrides the derived total.
	TotalPrice float64 `gorm:"default:0" json:"total_price"`

	Parts            []JobCardPart     `gorm:"type:jsonb;serializer:json" json:"parts"`
	SelectedServices []SelectedService `gorm:"type:jsonb;serializer:json" json:"selected_services"`

	Notes                   string     `gorm:"type:text" json:"notes"`
	JobDate                 *time.Time `gorm:"type:date" json:"job_date"`
	EstimatedCompletionDate *time.Time `json:"estimated_completion_date"`
	ActualCompletionDate    *time.Time `json:"actual_completion_date"`
}

// JobPhoto is the metadata row for a photo attachment persisted in object
// storage under Path.
type JobPhoto struct {
	BaseModel
	JobCardID   uuid.UUID `gorm:"type:uuid;index;not null" json:"job_card_id"`
	Path        string    `gorm:"type:varchar(512);not null" json:"url"`
	PhotoType   string    `gorm:"type:varchar(10)" json:"photo_type"` // before | after
	FileName    string    `gorm:"type:varchar(255)" json:"file_name"`
	ContentType string    `gorm:"type:varchar(100)" json:"content_type"`
	Size        int64     `json:"size"`
}
