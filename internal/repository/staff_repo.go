package repository

import (
	"github.com/narendrababuts/AutoShopPro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffRepository interface {
	Create(staff *model.Staff) error
	FindAll(garageID uuid.UUID) ([]model.Staff, error)
	Names(garageID uuid.UUID) ([]string, error)
}

type staffRepo struct {
	db *gorm.DB
}

func NewStaffRepo(db *gorm.DB) StaffRepository {
	return &staffRepo{db}
}

func (r *staffRepo) Create(staff *model.Staff) error {
	return r.db.Create(staff).Error
}

func (r *staffRepo) FindAll(garageID uuid.UUID) ([]model.Staff, error) {
	var staff []model.Staff
	err := r.db.Where("garage_id = ?", garageID).Order("name").Find(&staff).Error
	return staff, err
}

func (r *staffRepo) Names(garageID uuid.UUID) ([]string, error) {
	var names []string
	err := r.db.Model(&model.Staff{}).
		Where("garage_id = ?", garageID).
		Order("name").
		Pluck("name", &names).Error
	return names, err
}
