package repository

import (
	"github.com/narendrababuts/AutoShopPro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository interface {
	Get(garageID uuid.UUID, key string) (*model.Setting, error)
	Upsert(garageID uuid.UUID, key, value string) error
}

type settingRepo struct {
	db *gorm.DB
}

func NewSettingRepo(db *gorm.DB) SettingRepository {
	return &settingRepo{db}
}

func (r *settingRepo) Get(garageID uuid.UUID, key string) (*model.Setting, error) {
	var setting model.Setting
	err := r.db.First(&setting, "garage_id = ? AND setting_key = ?", garageID, key).Error
	return &setting, err
}

func (r *settingRepo) Upsert(garageID uuid.UUID, key, value string) error {
	setting := model.Setting{
		GarageID:     garageID,
		SettingKey:   key,
		SettingValue: value,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "garage_id"}, {Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value", "updated_at"}),
	}).Create(&setting).Error
}
