package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/narendrababuts/AutoShopPro/internal/model"
	"github.com/narendrababuts/AutoShopPro/internal/repository"
	"github.com/narendrababuts/AutoShopPro/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes shared across the service tests.

type fakeJobCardRepo struct {
	mu    sync.Mutex
	cards map[uuid.UUID]*model.JobCard

	createErr error
	updateErr error
	// updateGate, when set, blocks Update until released; used to hold a
	// save in flight.
	updateGate chan struct{}
}

func newFakeJobCardRepo() *fakeJobCardRepo {
	return &fakeJobCardRepo{cards: make(map[uuid.UUID]*model.JobCard)}
}

func (f *fakeJobCardRepo) Create(card *model.JobCard) error {
	if f.createErr != nil {
		return f.createErr
	}
	if card.ID == uuid.Nil {
		card.ID = uuid.New()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *card
	f.cards[card.ID] = &cp
	return nil
}

func (f *fakeJobCardRepo) Update(card *model.JobCard) (int64, error) {
	if f.updateGate != nil {
		<-f.updateGate
	}
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.cards[card.ID]
	if !ok || existing.GarageID != card.GarageID {
		return 0, nil
	}
	cp := *card
	f.cards[card.ID] = &cp
	return 1, nil
}

func (f *fakeJobCardRepo) FindByID(garageID, id uuid.UUID) (*model.JobCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	card, ok := f.cards[id]
	if !ok || card.GarageID != garageID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *card
	return &cp, nil
}

func (f *fakeJobCardRepo) FindCompleted(garageID uuid.UUID, limit int) ([]model.JobCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.JobCard
	for _, card := range f.cards {
		if card.GarageID != garageID {
			continue
		}
		if card.Status == model.StatusCompleted || card.Status == model.StatusReadyForPickup {
			out = append(out, *card)
		}
	}
	return out, nil
}

func (f *fakeJobCardRepo) FindRecent(garageID uuid.UUID, limit int) ([]model.JobCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.JobCard
	for _, card := range f.cards {
		if card.GarageID == garageID {
			out = append(out, *card)
		}
	}
	return out, nil
}

func (f *fakeJobCardRepo) FindCompletedBetween(garageID uuid.UUID, start, end time.Time) ([]model.JobCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.JobCard
	for _, card := range f.cards {
		if card.GarageID != garageID || card.Status != model.StatusCompleted {
			continue
		}
		at := card.CreatedAt
		if card.ActualCompletionDate != nil {
			at = *card.ActualCompletionDate
		}
		if !at.Before(start) && at.Before(end) {
			out = append(out, *card)
		}
	}
	return out, nil
}

func (f *fakeJobCardRepo) FindCompletedSince(garageID uuid.UUID, since time.Time) ([]model.JobCard, error) {
	return f.FindCompletedBetween(garageID, since, time.Now().AddDate(1, 0, 0))
}

func (f *fakeJobCardRepo) FindRecentCompletions(garageID uuid.UUID, limit int) ([]repository.CompletionSpan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var spans []repository.CompletionSpan
	for _, card := range f.cards {
		if card.GarageID != garageID || card.Status != model.StatusCompleted || card.ActualCompletionDate == nil {
			continue
		}
		spans = append(spans, repository.CompletionSpan{
			CreatedAt:            card.CreatedAt,
			ActualCompletionDate: *card.ActualCompletionDate,
		})
		if len(spans) == limit {
			break
		}
	}
	return spans, nil
}

func (f *fakeJobCardRepo) CountActive(garageID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, card := range f.cards {
		if card.GarageID != garageID {
			continue
		}
		switch card.Status {
		case model.StatusPending, model.StatusInProgress, model.StatusPartsOrdered:
			n++
		}
	}
	return n, nil
}

func (f *fakeJobCardRepo) FindCustomers(garageID uuid.UUID) ([]model.JobCard, error) {
	cards, err := f.FindRecent(garageID, 0)
	if err != nil {
		return nil, err
	}
	sort.Slice(cards, func(i, j int) bool {
		ti, tj := cards[i].CreatedAt, cards[j].CreatedAt
		if cards[i].JobDate != nil {
			ti = *cards[i].JobDate
		}
		if cards[j].JobDate != nil {
			tj = *cards[j].JobDate
		}
		return ti.After(tj)
	})
	return cards, nil
}

type fakeInventoryRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*model.InventoryItem

	// unscopedFetch serves rows regardless of garage, simulating a gateway
	// without tenant filtering so the in-service guard can be observed.
	unscopedFetch bool
	updateErrFor  map[uuid.UUID]error
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{
		items:        make(map[uuid.UUID]*model.InventoryItem),
		updateErrFor: make(map[uuid.UUID]error),
	}
}

func (f *fakeInventoryRepo) Create(item *model.InventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeInventoryRepo) FindAll(garageID uuid.UUID) ([]model.InventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.InventoryItem
	for _, item := range f.items {
		if item.GarageID == garageID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeInventoryRepo) FindByID(garageID, id uuid.UUID) (*model.InventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if !f.unscopedFetch && item.GarageID != garageID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *item
	return &cp, nil
}

func (f *fakeInventoryRepo) FindLowStock(garageID uuid.UUID) ([]model.InventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.InventoryItem
	for _, item := range f.items {
		if item.GarageID == garageID && item.LowStock() {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeInventoryRepo) Update(item *model.InventoryItem) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.items[item.ID]
	if !ok || existing.GarageID != item.GarageID {
		return 0, nil
	}
	cp := *item
	f.items[item.ID] = &cp
	return 1, nil
}

func (f *fakeInventoryRepo) UpdateQuantity(garageID, id uuid.UUID, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.updateErrFor[id]; ok {
		return err
	}
	item, ok := f.items[id]
	if !ok || item.GarageID != garageID {
		return nil
	}
	item.Quantity = quantity
	return nil
}

func (f *fakeInventoryRepo) Delete(garageID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if ok && item.GarageID == garageID {
		delete(f.items, id)
	}
	return nil
}

func (f *fakeInventoryRepo) quantity(id uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[id].Quantity
}

type fakePhotoRepo struct {
	mu        sync.Mutex
	photos    []model.JobPhoto
	createErr error
}

func (f *fakePhotoRepo) Create(photo *model.JobPhoto) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.photos = append(f.photos, *photo)
	return nil
}

func (f *fakePhotoRepo) FindByJobCard(jobCardID uuid.UUID) ([]model.JobPhoto, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.JobPhoto
	for _, p := range f.photos {
		if p.JobCardID == jobCardID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeStaffRepo struct {
	names []string
}

func (f *fakeStaffRepo) Create(staff *model.Staff) error { return nil }

func (f *fakeStaffRepo) FindAll(garageID uuid.UUID) ([]model.Staff, error) { return nil, nil }

func (f *fakeStaffRepo) Names(garageID uuid.UUID) ([]string, error) { return f.names, nil }

type fakeObjectStore struct {
	mu      sync.Mutex
	uploads []string
	failAll bool
}

func (f *fakeObjectStore) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	if f.failAll {
		return errors.New("storage unavailable")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, bucket+"/"+path)
	return nil
}

func testHub() *ws.Hub {
	// Not running; Notify drops events once the buffer fills, which is
	// fine for tests.
	return ws.NewHub()
}

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records []*model.Attendance
}

func (f *fakeAttendanceRepo) Create(record *model.Attendance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	f.records = append(f.records, record)
	return nil
}

func (f *fakeAttendanceRepo) FindRecent(garageID uuid.UUID, limit int) ([]model.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Attendance
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].GarageID != garageID {
			continue
		}
		out = append(out, *f.records[i])
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ClockOut(garageID, staffID uuid.UUID, at time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var newest *model.Attendance
	for _, rec := range f.records {
		if rec.GarageID != garageID || rec.StaffID != staffID || rec.ClockOut != nil {
			continue
		}
		if newest == nil || rec.ClockIn.After(newest.ClockIn) {
			newest = rec
		}
	}
	if newest == nil {
		return 0, nil
	}
	t := at
	newest.ClockOut = &t
	return 1, nil
}

type fakeSettingRepo struct {
	mu       sync.Mutex
	settings map[string]string
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{settings: make(map[string]string)}
}

func (f *fakeSettingRepo) key(garageID uuid.UUID, key string) string {
	return garageID.String() + ":" + key
}

func (f *fakeSettingRepo) Get(garageID uuid.UUID, key string) (*model.Setting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.settings[f.key(garageID, key)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.Setting{GarageID: garageID, SettingKey: key, SettingValue: value}, nil
}

func (f *fakeSettingRepo) Upsert(garageID uuid.UUID, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings[f.key(garageID, key)] = value
	return nil
}
