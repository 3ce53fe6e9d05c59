package service

import (
	"fmt"
	"time"

	"github.com/narendrababuts/AutoShopPro/internal/repository"

	"github.com/google/uuid"
)

// PromoCustomer is a unique customer derived from job-card history.
type PromoCustomer struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
	Car   string    `json:"car"`
}

// PromotionalOffer is an active campaign entry.
type PromotionalOffer struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ValidUntil  time.Time `json:"valid_until"`
}

type PromotionsService interface {
	ActiveOffers(garageID uuid.UUID) ([]PromotionalOffer, error)
	Customers(garageID uuid.UUID) ([]PromoCustomer, error)
}

type promotionsService struct {
	jobCards repository.JobCardRepository
}

func NewPromotionsService(jobCards repository.JobCardRepository) PromotionsService {
	return &promotionsService{jobCards: jobCards}
}

func (s *promotionsService) ActiveOffers(garageID uuid.UUID) ([]PromotionalOffer, error) {
	if garageID == uuid.Nil {
		return nil, ErrNoGarage
	}
	now := time.Now()
	return []PromotionalOffer{
		{
			Title:       "20% Off Oil Change",
			Description: "Get 20% off your next oil change service. Valid for all vehicle types.",
			ValidUntil:  now.AddDate(0, 0, 30),
		},
		{
			Title:       "Free Brake Inspection",
			Description: "Complimentary brake system inspection with any service over ₹500.",
			ValidUntil:  now.AddDate(0, 0, 45),
		},
	}, nil
}

// Customers reduces job-card history to one entry per phone number, keeping
// the first occurrence in newest-job-first order.
func (s *promotionsService) Customers(garageID uuid.UUID) ([]PromoCustomer, error) {
	if garageID == uuid.Nil {
		return nil, ErrNoGarage
	}
	cards, err := s.jobCards.FindCustomers(garageID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	customers := make([]PromoCustomer, 0)
	for _, card := range cards {
		if seen[card.CustomerPhone] {
			continue
		}
		seen[card.CustomerPhone] = true
		customers = append(customers, PromoCustomer{
			ID:    card.ID,
			Name:  card.CustomerName,
			Phone: card.CustomerPhone,
			Car:   fmt.Sprintf("%s %s (%s)", card.CarMake, card.CarModel, card.CarNumber),
		})
	}
	return customers, nil
}
