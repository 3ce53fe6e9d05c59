package repository

import (
	"github.com/narendrababuts/AutoShopPro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PhotoRepository interface {
	Create(photo *model.JobPhoto) error
	FindByJobCard(jobCardID uuid.UUID) ([]model.JobPhoto, error)
}

type photoRepo struct {
	db *gorm.DB
}

func NewPhotoRepo(db *gorm.DB) PhotoRepository {
	return &photoRepo{db}
}

func (r *photoRepo) Create(photo *model.JobPhoto) error {
	return r.db.Create(photo).Error
}

func (r *photoRepo) FindByJobCard(jobCardID uuid.UUID) ([]model.JobPhoto, error) {
	var photos []model.JobPhoto
	err := r.db.Where("job_card_id = ?", jobCardID).Order("created_at").Find(&photos).Error
	return photos, err
}
