package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/narendrababuts/AutoShopPro/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCard() *model.JobCard {
	return &model.JobCard{
		CustomerName:    "Ravi Kumar",
		CustomerPhone:   "+919812345678",
		CarMake:         "Maruti",
		CarModel:        "Swift",
		CarNumber:       "KA01AB1234",
		WorkDescription: "Brake pad replacement",
		AssignedStaff:   "Suresh",
	}
}

func newTestJobCardService(cards *fakeJobCardRepo, inv *fakeInventoryRepo, photos *fakePhotoRepo, store *fakeObjectStore) JobCardService {
	hub := testHub()
	invService := NewInventoryService(inv, hub)
	return NewJobCardService(cards, photos, &fakeStaffRepo{}, invService, store, hub)
}

func TestValidate_AllFieldsPresent(t *testing.T) {
	svc := newTestJobCardService(newFakeJobCardRepo(), newFakeInventoryRepo(), &fakePhotoRepo{}, &fakeObjectStore{})
	assert.Nil(t, svc.Validate(validCard()))
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	svc := newTestJobCardService(newFakeJobCardRepo(), newFakeInventoryRepo(), &fakePhotoRepo{}, &fakeObjectStore{})

	verr := svc.Validate(&model.JobCard{})
	require.NotNil(t, verr)
	assert.Len(t, verr.Violations, 7)
	assert.Contains(t, verr.Violations, "Customer name is required")
	assert.Contains(t, verr.Violations, "License plate is required")
}

func TestValidate_ExactViolationsForPartialCard(t *testing.T) {
	svc := newTestJobCardService(newFakeJobCardRepo(), newFakeInventoryRepo(), &fakePhotoRepo{}, &fakeObjectStore{})

	card := validCard()
	card.CustomerName = ""
	card.CarMake = ""

	verr := svc.Validate(card)
	require.NotNil(t, verr)
	assert.Equal(t, []string{"Customer name is required", "Car make is required"}, verr.Violations)
}

func TestSave_ValidationBlocksWrite(t *testing.T) {
	cards := newFakeJobCardRepo()
	svc := newTestJobCardService(cards, newFakeInventoryRepo(), &fakePhotoRepo{}, &fakeObjectStore{})

	_, err := svc.Save(context.Background(), uuid.New(), &model.JobCard{}, SaveModeCreate, nil, "", "tester")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, cards.cards)
}

func TestSave_RequiresGarage(t *testing.T) {
	svc := newTestJobCardService(newFakeJobCardRepo(), newFakeInventoryRepo(), &fakePhotoRepo{}, &fakeObjectStore{})

	_, err := svc.Save(context.Background(), uuid.Nil, validCard(), SaveModeCreate, nil, "", "tester")
	assert.ErrorIs(t, err, ErrNoGarage)
}

func TestSave_CreateReturnsID(t *testing.T) {
	cards := newFakeJobCardRepo()
	svc := newTestJobCardService(cards, newFakeInventoryRepo(), &fakePhotoRepo{}, &fakeObjectStore{})

	garage := uuid.New()
	result, err := svc.Save(context.Background(), garage, validCard(), SaveModeCreate, nil, "", "tester")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, result.ID)

	saved := cards.cards[result.ID]
	require.NotNil(t, saved)
	assert.Equal(t, garage, saved.GarageID)
	assert.Equal(t, model.StatusPending, saved.Status)
}

func TestSave_UpdateScopedByGarage(t *testing.T) {
	cards := newFakeJobCardRepo()
	svc := newTestJobCardService(cards, newFakeInventoryRepo(), &fakePhotoRepo{}, &fakeObjectStore{})

	owner := uuid.New()
	card := validCard()
	_, err := svc.Save(context.Background(), owner, card, SaveModeCreate, nil, "", "tester")
	require.NoError(t, err)

	// Another garage guessing the id cannot touch the row.
	intruderCard := validCard()
	intruderCard.ID = card.ID
	_, err = svc.Save(context.Background(), uuid.New(), intruderCard, SaveModeUpdate, nil, "", "tester")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSave_ConcurrentSaveRejected(t *testing.T) {
	cards := newFakeJobCardRepo()
	cards.updateGate = make(chan struct{})
	svc := newTestJobCardService(cards, newFakeInventoryRepo(), &fakePhotoRepo{}, &fakeObjectStore{})

	garage := uuid.New()
	card := validCard()
	_, err := svc.Save(context.Background(), garage, card, SaveModeCreate, nil, "", "tester")
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	firstDone := make(chan error, 1)
	go func() {
		defer wg.Done()
		_, err := svc.Save(context.Background(), garage, card, SaveModeUpdate, nil, "", "tester")
		firstDone <- err
	}()

	// Wait until the first save is parked inside Update, then submit a
	// duplicate.
	time.Sleep(50 * time.Millisecond)
	_, err = svc.Save(context.Background(), garage, card, SaveModeUpdate, nil, "", "tester")
	assert.ErrorIs(t, err, ErrSaveInProgress)

	close(cards.updateGate)
	wg.Wait()
	assert.NoError(t, <-firstDone)

	// Once the first save lands the guard is released.
	cards.updateGate = nil
	_, err = svc.Save(context.Background(), garage, card, SaveModeUpdate, nil, "", "tester")
	assert.NoError(t, err)
}

func TestSave_DuplicateCreateWithClientTokenRejected(t *testing.T) {
	cards := newFakeJobCardRepo()
	svc := newTestJobCardService(cards, newFakeInventoryRepo(), &fakePhotoRepo{}, &fakeObjectStore{}).(*jobCardService)

	// Hold the guard as an in-flight create would.
	garage := uuid.New()
	key := svc.workflowKey(garage, validCard(), SaveModeCreate, "draft-42")
	require.True(t, svc.inflight.acquire(key))

	_, err := svc.Save(context.Background(), garage, validCard(), SaveModeCreate, nil, "draft-42", "tester")
	assert.ErrorIs(t, err, ErrSaveInProgress)

	svc.inflight.release(key)
	_, err = svc.Save(context.Background(), garage, validCard(), SaveModeCreate, nil, "draft-42", "tester")
	assert.NoError(t, err)
}

func TestSave_DeductsEligibleParts(t *testing.T) {
	cards := newFakeJobCardRepo()
	inv := newFakeInventoryRepo()
	svc := newTestJobCardService(cards, inv, &fakePhotoRepo{}, &fakeObjectStore{})

	garage := uuid.New()
	item := &model.InventoryItem{GarageID: garage, ItemName: "Brake Pads", Quantity: 10, UnitPrice: 150}
	require.NoError(t, inv.Create(item))

	card := validCard()
	card.Parts = []model.JobCardPart{
		{InventoryID: item.ID.String(), Name: "Brake Pads", Quantity: 2, UnitPrice: 150, InStock: true},
		{InventoryID: "custom", Name: "Gasket", Quantity: 1, UnitPrice: 20, InStock: true},
	}

	result, err := svc.Save(context.Background(), garage, card, SaveModeCreate, nil, "", "tester")
	require.NoError(t, err)
	assert.Empty(t, result.InventoryWarnings)
	assert.Equal(t, 8, inv.quantity(item.ID))
}

func TestSave_InventoryFailureDoesNotFailSave(t *testing.T) {
	cards := newFakeJobCardRepo()
	inv := newFakeInventoryRepo()
	svc := newTestJobCardService(cards, inv, &fakePhotoRepo{}, &fakeObjectStore{})

	garage := uuid.New()
	item := &model.InventoryItem{GarageID: garage, ItemName: "Oil Filter", Quantity: 4, UnitPrice: 90}
	require.NoError(t, inv.Create(item))
	inv.updateErrFor[item.ID] = assert.AnError

	card := validCard()
	card.Parts = []model.JobCardPart{
		{InventoryID: item.ID.String(), Name: "Oil Filter", Quantity: 1, UnitPrice: 90, InStock: true},
	}

	result, err := svc.Save(context.Background(), garage, card, SaveModeCreate, nil, "", "tester")
	require.NoError(t, err)
	require.Len(t, result.InventoryWarnings, 1)
	assert.Contains(t, result.InventoryWarnings[0], "Oil Filter")
}

func TestSave_PersistsPhotosIndependently(t *testing.T) {
	cards := newFakeJobCardRepo()
	photos := &fakePhotoRepo{}
	store := &fakeObjectStore{}
	svc := newTestJobCardService(cards, newFakeInventoryRepo(), photos, store)

	staged := []StagedPhoto{
		{Data: []byte("before-bytes"), PhotoType: "before", FileName: "before.jpg", ContentType: "image/jpeg"},
		{Data: []byte("after-bytes"), PhotoType: "after", FileName: "after.png", ContentType: "image/png"},
	}

	result, err := svc.Save(context.Background(), uuid.New(), validCard(), SaveModeCreate, staged, "", "tester")
	require.NoError(t, err)
	assert.Len(t, store.uploads, 2)
	require.Len(t, photos.photos, 2)
	assert.Equal(t, result.ID, photos.photos[0].JobCardID)
	assert.Equal(t, "before", photos.photos[0].PhotoType)
}

func TestSave_PhotoFailureIsSilent(t *testing.T) {
	cards := newFakeJobCardRepo()
	photos := &fakePhotoRepo{}
	store := &fakeObjectStore{failAll: true}
	svc := newTestJobCardService(cards, newFakeInventoryRepo(), photos, store)

	staged := []StagedPhoto{
		{Data: []byte("x"), PhotoType: "before", FileName: "a.jpg", ContentType: "image/jpeg"},
	}

	_, err := svc.Save(context.Background(), uuid.New(), validCard(), SaveModeCreate, staged, "", "tester")
	assert.NoError(t, err)
	// Upload failed, so no metadata row either.
	assert.Empty(t, photos.photos)
}

func TestGet_ScopedByGarage(t *testing.T) {
	cards := newFakeJobCardRepo()
	svc := newTestJobCardService(cards, newFakeInventoryRepo(), &fakePhotoRepo{}, &fakeObjectStore{})

	garage := uuid.New()
	card := validCard()
	_, err := svc.Save(context.Background(), garage, card, SaveModeCreate, nil, "", "tester")
	require.NoError(t, err)

	got, err := svc.Get(garage, card.ID)
	require.NoError(t, err)
	assert.Equal(t, card.ID, got.ID)

	_, err = svc.Get(uuid.New(), card.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
