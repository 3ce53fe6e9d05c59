package service

import (
	"time"

	"github.com/narendrababuts/AutoShopPro/internal/model"
	"github.com/narendrababuts/AutoShopPro/internal/repository"
	"github.com/narendrababuts/AutoShopPro/internal/ws"
	"github.com/narendrababuts/AutoShopPro/pkg/validator"

	"github.com/google/uuid"
)

// FinancialSummary is income vs expense over a date range.
type FinancialSummary struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

type AccountsService interface {
	List(garageID uuid.UUID) ([]model.Transaction, error)
	Record(garageID uuid.UUID, tx *model.Transaction, userID string) error
	Update(garageID, id uuid.UUID, tx *model.Transaction, userID string) error
	Delete(garageID, id uuid.UUID) error
	Summary(garageID uuid.UUID, start, end time.Time) (*FinancialSummary, error)
}

type accountsService struct {
	repo  repository.AccountRepository
	wsHub *ws.Hub
}

func NewAccountsService(repo repository.AccountRepository, hub *ws.Hub) AccountsService {
	return &accountsService{repo: repo, wsHub: hub}
}

func (s *accountsService) List(garageID uuid.UUID) ([]model.Transaction, error) {
	if garageID == uuid.Nil {
		return nil, ErrNoGarage
	}
	return s.repo.FindAll(garageID)
}

func (s *accountsService) Record(garageID uuid.UUID, tx *model.Transaction, userID string) error {
	if garageID == uuid.Nil {
		return ErrNoGarage
	}
	if err := validator.CheckStruct(tx); err != nil {
		return err
	}

	tx.GarageID = garageID
	tx.CreatedBy = userID
	tx.UpdatedBy = userID
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}

	if err := s.repo.Create(tx); err != nil {
		return &PersistenceError{Op: "record transaction", Err: err}
	}

	s.wsHub.Notify(ws.Event{
		GarageID: garageID,
		Table:    "accounts",
		Action:   "created",
		Payload:  map[string]interface{}{"id": tx.ID, "type": tx.Type, "amount": tx.Amount},
	})
	return nil
}

func (s *accountsService) Update(garageID, id uuid.UUID, tx *model.Transaction, userID string) error {
	if garageID == uuid.Nil {
		return ErrNoGarage
	}
	if err := validator.CheckStruct(tx); err != nil {
		return err
	}

	tx.ID = id
	tx.GarageID = garageID
	tx.UpdatedBy = userID

	rows, err := s.repo.Update(tx)
	if err != nil {
		return &PersistenceError{Op: "update transaction", Err: err}
	}
	if rows == 0 {
		return ErrNotFound
	}

	s.wsHub.Notify(ws.Event{
		GarageID: garageID,
		Table:    "accounts",
		Action:   "updated",
		Payload:  map[string]interface{}{"id": id},
	})
	return nil
}

func (s *accountsService) Delete(garageID, id uuid.UUID) error {
	if garageID == uuid.Nil {
		return ErrNoGarage
	}
	if err := s.repo.Delete(garageID, id); err != nil {
		return &PersistenceError{Op: "delete transaction", Err: err}
	}
	s.wsHub.Notify(ws.Event{
		GarageID: garageID,
		Table:    "accounts",
		Action:   "deleted",
		Payload:  map[string]interface{}{"id": id},
	})
	return nil
}

func (s *accountsService) Summary(garageID uuid.UUID, start, end time.Time) (*FinancialSummary, error) {
	if garageID == uuid.Nil {
		return nil, ErrNoGarage
	}
	income, expense, err := s.repo.GetFinancialSummary(garageID, start, end)
	if err != nil {
		return nil, err
	}
	return &FinancialSummary{
		Income:  income,
		Expense: expense,
		Net:     income - expense,
	}, nil
}
