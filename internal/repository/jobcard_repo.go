package repository

import (
	"time"

	"github.com/narendrababuts/AutoShopPro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobCardRepository interface {
	Create(card *model.JobCard) error
	// Update writes the card scoped by id AND garage id and reports the
	// number of rows touched so callers can detect cross-tenant misses.
	Update(card *model.JobCard) (int64, error)
	FindByID(garageID, id uuid.UUID) (*model.JobCard, error)
	FindCompleted(garageID uuid.UUID, limit int) ([]model.JobCard, error)
	FindRecent(garageID uuid.UUID, limit int) ([]model.JobCard, error)
	FindCompletedBetween(garageID uuid.UUID, start, end time.Time) ([]model.JobCard, error)
	FindCompletedSince(garageID uuid.UUID, since time.Time) ([]model.JobCard, error)
	FindRecentCompletions(garageID uuid.UUID, limit int) ([]CompletionSpan, error)
	CountActive(garageID uuid.UUID) (int64, error)
	FindCustomers(garageID uuid.UUID) ([]model.JobCard, error)
}

// CompletionSpan is the slice of a job card the average-repair-time metric
// needs.
type CompletionSpan struct {
	CreatedAt            time.Time
	ActualCompletionDate time.Time
}

type jobCardRepo struct {
	db *gorm.DB
}

func NewJobCardRepo(db *gorm.DB) JobCardRepository {
	return &jobCardRepo{db}
}

func (r *jobCardRepo) Create(card *model.JobCard) error {
	return r.db.Create(card).Error
}

func (r *jobCardRepo) Update(card *model.JobCard) (int64, error) {
	res := r.db.Model(&model.JobCard{}).
		Where("id = ? AND garage_id = ?", card.ID, card.GarageID).
		Select("*").
		Omit("id", "garage_id", "created_at", "created_by", "deleted_at").
		Updates(card)
	return res.RowsAffected, res.Error
}

func (r *jobCardRepo) FindByID(garageID, id uuid.UUID) (*model.JobCard, error) {
	var card model.JobCard
	err := r.db.First(&card, "id = ? AND garage_id = ?", id, garageID).Error
	return &card, err
}

func (r *jobCardRepo) FindCompleted(garageID uuid.UUID, limit int) ([]model.JobCard, error) {
	var cards []model.JobCard
	err := r.db.
		Where("garage_id = ? AND status IN ?", garageID,
			[]model.JobStatus{model.StatusCompleted, model.StatusReadyForPickup}).
		Order("created_at DESC").
		Limit(limit).
		Find(&cards).Error
	return cards, err
}

func (r *jobCardRepo) FindRecent(garageID uuid.UUID, limit int) ([]model.JobCard, error) {
	var cards []model.JobCard
	err := r.db.
		Where("garage_id = ?", garageID).
		Order("created_at DESC").
		Limit(limit).
		Find(&cards).Error
	return cards, err
}

// completedWindow filters completed cards into a window on the completion
// date, falling back to created_at when no completion date was recorded.
func completedWindow(db *gorm.DB, garageID uuid.UUID) *gorm.DB {
	return db.Model(&model.JobCard{}).
		Where("garage_id = ? AND status = ?", garageID, model.StatusCompleted)
}

func (r *jobCardRepo) FindCompletedBetween(garageID uuid.UUID, start, end time.Time) ([]model.JobCard, error) {
	var cards []model.JobCard
	err := completedWindow(r.db, garageID).
		Where(`(actual_completion_date >= ? AND actual_completion_date < ?)
			OR (actual_completion_date IS NULL AND created_at >= ? AND created_at < ?)`,
			start, end, start, end).
		Find(&cards).Error
	return cards, err
}

func (r *jobCardRepo) FindCompletedSince(garageID uuid.UUID, since time.Time) ([]model.JobCard, error) {
	var cards []model.JobCard
	err := completedWindow(r.db, garageID).
		Where(`actual_completion_date >= ?
			OR (actual_completion_date IS NULL AND created_at >= ?)`, since, since).
		Find(&cards).Error
	return cards, err
}

func (r *jobCardRepo) FindRecentCompletions(garageID uuid.UUID, limit int) ([]CompletionSpan, error) {
	var spans []CompletionSpan
	err := r.db.Model(&model.JobCard{}).
		Select("created_at, actual_completion_date").
		Where("garage_id = ? AND status = ? AND actual_completion_date IS NOT NULL",
			garageID, model.StatusCompleted).
		Order("actual_completion_date DESC").
		Limit(limit).
		Scan(&spans).Error
	return spans, err
}

func (r *jobCardRepo) CountActive(garageID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.Model(&model.JobCard{}).
		Where("garage_id = ? AND status IN ?", garageID,
			[]model.JobStatus{model.StatusPending, model.StatusInProgress, model.StatusPartsOrdered}).
		Count(&n).Error
	return n, err
}

func (r *jobCardRepo) FindCustomers(garageID uuid.UUID) ([]model.JobCard, error) {
	var cards []model.JobCard
	err := r.db.
		Select("id, customer_name, customer_phone, car_make, car_model, car_number").
		Where("garage_id = ?", garageID).
		Order("job_date DESC").
		Find(&cards).Error
	return cards, err
}
