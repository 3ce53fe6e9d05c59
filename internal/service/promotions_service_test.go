package service

import (
	"testing"
	"time"

	"github.com/narendrababuts/AutoShopPro/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerCard(garage uuid.UUID, name, phone, car string, daysAgo int) *model.JobCard {
	jobDate := time.Now().AddDate(0, 0, -daysAgo)
	card := &model.JobCard{
		GarageID:      garage,
		CustomerName:  name,
		CustomerPhone: phone,
		CarMake:       car,
		JobDate:       &jobDate,
	}
	card.ID = uuid.New()
	card.CreatedAt = jobDate
	return card
}

func TestCustomers_UniqueByPhoneNewestFirst(t *testing.T) {
	repo := newFakeJobCardRepo()
	garage := uuid.New()

	older := customerCard(garage, "Ravi K", "9876500001", "Honda", 10)
	newer := customerCard(garage, "Ravi Kumar", "9876500001", "Honda", 2)
	other := customerCard(garage, "Anita", "9876500002", "Maruti", 5)
	repo.cards[older.ID] = older
	repo.cards[newer.ID] = newer
	repo.cards[other.ID] = other

	svc := NewPromotionsService(repo)
	customers, err := svc.Customers(garage)
	require.NoError(t, err)
	require.Len(t, customers, 2)

	// The repeat phone keeps its most recent job-card details.
	assert.Equal(t, "Ravi Kumar", customers[0].Name)
	assert.Equal(t, "9876500001", customers[0].Phone)
	assert.Equal(t, "Anita", customers[1].Name)
}

func TestCustomers_ScopedToGarage(t *testing.T) {
	repo := newFakeJobCardRepo()
	garage := uuid.New()

	mine := customerCard(garage, "Ravi", "9876500001", "Honda", 1)
	theirs := customerCard(uuid.New(), "Intruder", "9876500009", "BMW", 1)
	repo.cards[mine.ID] = mine
	repo.cards[theirs.ID] = theirs

	svc := NewPromotionsService(repo)
	customers, err := svc.Customers(garage)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Ravi", customers[0].Name)
}

func TestActiveOffers_RequireGarage(t *testing.T) {
	svc := NewPromotionsService(newFakeJobCardRepo())

	_, err := svc.ActiveOffers(uuid.Nil)
	assert.ErrorIs(t, err, ErrNoGarage)

	offers, err := svc.ActiveOffers(uuid.New())
	require.NoError(t, err)
	assert.NotEmpty(t, offers)
	for _, offer := range offers {
		assert.True(t, offer.ValidUntil.After(time.Now()))
	}
}
