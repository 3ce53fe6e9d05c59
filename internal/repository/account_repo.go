package repository

import (
	"time"

	"github.com/narendrababuts/AutoShopPro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(tx *model.Transaction) error
	FindAll(garageID uuid.UUID) ([]model.Transaction, error)
	Update(tx *model.Transaction) (int64, error)
	Delete(garageID, id uuid.UUID) error
	GetFinancialSummary(garageID uuid.UUID, start, end time.Time) (income, expense float64, err error)
}

type accountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) AccountRepository {
	return &accountRepo{db}
}

func (r *accountRepo) Create(tx *model.Transaction) error {
	return r.db.Create(tx).Error
}

func (r *accountRepo) FindAll(garageID uuid.UUID) ([]model.Transaction, error) {
	var txs []model.Transaction
	err := r.db.Where("garage_id = ?", garageID).Order("date DESC").Find(&txs).Error
	return txs, err
}

func (r *accountRepo) Update(tx *model.Transaction) (int64, error) {
	res := r.db.Model(&model.Transaction{}).
		Where("id = ? AND garage_id = ?", tx.ID, tx.GarageID).
		Select("date", "description", "amount", "type", "category", "updated_by").
		Updates(tx)
	return res.RowsAffected, res.Error
}

func (r *accountRepo) Delete(garageID, id uuid.UUID) error {
	return r.db.Where("garage_id = ?", garageID).Delete(&model.Transaction{}, "id = ?", id).Error
}

func (r *accountRepo) GetFinancialSummary(garageID uuid.UUID, start, end time.Time) (float64, float64, error) {
	var income float64
	var expense float64

	err := r.db.Model(&model.Transaction{}).
		Where("garage_id = ? AND type = ? AND date BETWEEN ? AND ?", garageID, model.TxIncome, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&income).Error
	if err != nil {
		return 0, 0, err
	}

	err = r.db.Model(&model.Transaction{}).
		Where("garage_id = ? AND type = ? AND date BETWEEN ? AND ?", garageID, model.TxExpense, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&expense).Error
	if err != nil {
		return 0, 0, err
	}

	return income, expense, nil
}
