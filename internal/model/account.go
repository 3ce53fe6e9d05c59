package model

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TxIncome  TransactionType = "Income"
	TxExpense TransactionType = "Expense"
)

// Transaction is a ledger entry on the accounts screen.
type Transaction struct {
	BaseModel
	GarageID    uuid.UUID       `gorm:"type:uuid;index;not null" json:"garage_id"`
	Date        time.Time       `gorm:"not null" json:"date"`
	Description string          `gorm:"type:text" json:"description" validate:"required"`
	Amount      float64         `gorm:"not null" json:"amount" validate:"gt=0"`
	Type        TransactionType `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=Income Expense"`
	Category    string          `gorm:"type:varchar(100)" json:"category" validate:"required"`
}
