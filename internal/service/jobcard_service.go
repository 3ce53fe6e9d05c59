package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/narendrababuts/AutoShopPro/internal/model"
	"github.com/narendrababuts/AutoShopPro/internal/repository"
	"github.com/narendrababuts/AutoShopPro/internal/ws"
	"github.com/narendrababuts/AutoShopPro/pkg/storage"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SaveMode string

const (
	SaveModeCreate SaveMode = "create"
	SaveModeUpdate SaveMode = "update"
)

const (
	photoBucket        = "job-cards"
	completedListLimit = 50
)

// StagedPhoto is a photo held by the client until the card is saved.
type StagedPhoto struct {
	Data        []byte
	PhotoType   string // before | after
	FileName    string
	ContentType string
}

// SaveResult reports the persisted card id plus any non-fatal inventory
// warnings ("saved, but stock not adjusted").
type SaveResult struct {
	ID                uuid.UUID `json:"id"`
	InventoryWarnings []string  `json:"inventory_warnings,omitempty"`
}

type JobCardService interface {
	Validate(card *model.JobCard) *ValidationError
	Save(ctx context.Context, garageID uuid.UUID, card *model.JobCard, mode SaveMode, photos []StagedPhoto, clientToken, userID string) (*SaveResult, error)
	Get(garageID, id uuid.UUID) (*model.JobCard, error)
	ListCompleted(garageID uuid.UUID) ([]model.JobCard, error)
	StaffOptions(garageID uuid.UUID) ([]string, error)
	Photos(garageID, id uuid.UUID) ([]model.JobPhoto, error)
}

type jobCardService struct {
	repo      repository.JobCardRepository
	photoRepo repository.PhotoRepository
	staffRepo repository.StaffRepository
	inventory InventoryService
	store     storage.ObjectStore
	wsHub     *ws.Hub

	// inflight holds the workflow keys with a save currently running.
	// One key maps to one UI editing session: the job id for updates, the
	// caller's client token for creates.
	inflight saveGuard
}

func NewJobCardService(
	repo repository.JobCardRepository,
	photoRepo repository.PhotoRepository,
	staffRepo repository.StaffRepository,
	inventory InventoryService,
	store storage.ObjectStore,
	hub *ws.Hub,
) JobCardService {
	return &jobCardService{
		repo:      repo,
		photoRepo: photoRepo,
		staffRepo: staffRepo,
		inventory: inventory,
		store:     store,
		wsHub:     hub,
	}
}

// Validate collects every missing required field so the caller can show all
// problems at once rather than one per round trip.
func (s *jobCardService) Validate(card *model.JobCard) *ValidationError {
	var violations []string

	if card.CustomerName == "" {
		violations = append(violations, "Customer name is required")
	}
	if card.CustomerPhone == "" {
		violations = append(violations, "Customer phone is required")
	}
	if card.CarMake == "" {
		violations = append(violations, "Car make is required")
	}
	if card.CarModel == "" {
		violations = append(violations, "Car model is required")
	}
	if card.CarNumber == "" {
		violations = append(violations, "License plate is required")
	}
	if card.WorkDescription == "" {
		violations = append(violations, "Work description is required")
	}
	if card.AssignedStaff == "" {
		violations = append(violations, "Assigned staff is required")
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// Save runs the job-card workflow: validate, persist, deduct consumed stock,
// attach photos. Validation failures block any write. The inventory side
// effect and photo uploads never fail a committed save: stock warnings come
// back in the result, photo failures are logged per file only.
func (s *jobCardService) Save(ctx context.Context, garageID uuid.UUID, card *model.JobCard, mode SaveMode, photos []StagedPhoto, clientToken, userID string) (*SaveResult, error) {
	if garageID == uuid.Nil {
		return nil, ErrNoGarage
	}

	key := s.workflowKey(garageID, card, mode, clientToken)
	if key != "" {
		if !s.inflight.acquire(key) {
			log.WithField("key", key).Warn("save already in progress, rejecting duplicate submission")
			return nil, ErrSaveInProgress
		}
		defer s.inflight.release(key)
	}

	if verr := s.Validate(card); verr != nil {
		return nil, verr
	}

	card.GarageID = garageID
	card.UpdatedBy = userID
	if card.Status == "" {
		card.Status = model.StatusPending
	}

	switch mode {
	case SaveModeUpdate:
		if card.ID == uuid.Nil {
			return nil, &ValidationError{Violations: []string{"Job card id is required for update"}}
		}
		rows, err := s.repo.Update(card)
		if err != nil {
			return nil, &PersistenceError{Op: "update job card", Err: err}
		}
		if rows == 0 {
			// Either the id is stale or it belongs to another garage;
			// both look identical on purpose.
			return nil, ErrNotFound
		}
	default:
		card.CreatedBy = userID
		if err := s.repo.Create(card); err != nil {
			return nil, &PersistenceError{Op: "create job card", Err: err}
		}
	}

	result := &SaveResult{ID: card.ID}

	// Stock deduction is best effort once the card is committed: the card
	// is the billing source of truth, inventory accuracy is not worth
	// failing the save over.
	if len(card.Parts) > 0 {
		result.InventoryWarnings = s.inventory.AdjustForParts(garageID, card.Parts, card.ID)
	}

	s.persistPhotos(ctx, card.ID, photos)

	s.wsHub.Notify(ws.Event{
		GarageID: garageID,
		Table:    "job_cards",
		Action:   string(mode),
		Payload:  map[string]interface{}{"id": card.ID, "status": card.Status},
	})

	return result, nil
}

// workflowKey identifies one editing session for the re-entrancy guard.
// Creates without a client token get no guard; each such request is a
// distinct insert.
func (s *jobCardService) workflowKey(garageID uuid.UUID, card *model.JobCard, mode SaveMode, clientToken string) string {
	if mode == SaveModeUpdate && card.ID != uuid.Nil {
		return garageID.String() + ":" + card.ID.String()
	}
	if clientToken != "" {
		return garageID.String() + ":draft:" + clientToken
	}
	return ""
}

// persistPhotos uploads each staged photo and records its metadata row.
// Every photo is independent; a failure is logged and the rest continue.
func (s *jobCardService) persistPhotos(ctx context.Context, jobCardID uuid.UUID, photos []StagedPhoto) {
	for _, photo := range photos {
		ext := strings.TrimPrefix(path.Ext(photo.FileName), ".")
		objectPath := fmt.Sprintf("%s/%d.%s", jobCardID, time.Now().UnixNano(), ext)

		if err := s.store.Upload(ctx, photoBucket, objectPath, photo.Data, photo.ContentType); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"job_card_id": jobCardID,
				"file":        photo.FileName,
			}).Error("photo upload failed")
			continue
		}

		meta := &model.JobPhoto{
			JobCardID:   jobCardID,
			Path:        photoBucket + "/" + objectPath,
			PhotoType:   photo.PhotoType,
			FileName:    photo.FileName,
			ContentType: photo.ContentType,
			Size:        int64(len(photo.Data)),
		}
		if err := s.photoRepo.Create(meta); err != nil {
			log.WithError(err).WithField("job_card_id", jobCardID).
				Error("failed to save photo metadata")
		}
	}
}

func (s *jobCardService) Get(garageID, id uuid.UUID) (*model.JobCard, error) {
	if garageID == uuid.Nil {
		return nil, ErrNoGarage
	}
	card, err := s.repo.FindByID(garageID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return card, err
}

func (s *jobCardService) ListCompleted(garageID uuid.UUID) ([]model.JobCard, error) {
	if garageID == uuid.Nil {
		return nil, ErrNoGarage
	}
	return s.repo.FindCompleted(garageID, completedListLimit)
}

func (s *jobCardService) StaffOptions(garageID uuid.UUID) ([]string, error) {
	if garageID == uuid.Nil {
		return nil, ErrNoGarage
	}
	return s.staffRepo.Names(garageID)
}

func (s *jobCardService) Photos(garageID, id uuid.UUID) ([]model.JobPhoto, error) {
	if _, err := s.Get(garageID, id); err != nil {
		return nil, err
	}
	return s.photoRepo.FindByJobCard(id)
}
