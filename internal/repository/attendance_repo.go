package repository

import (
	"time"

	"github.com/narendrababuts/AutoShopPro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceRepository interface {
	Create(record *model.Attendance) error
	FindRecent(garageID uuid.UUID, limit int) ([]model.Attendance, error)
	// ClockOut closes the newest open record for the staff member.
	ClockOut(garageID, staffID uuid.UUID, at time.Time) (int64, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db}
}

func (r *attendanceRepo) Create(record *model.Attendance) error {
	return r.db.Create(record).Error
}

func (r *attendanceRepo) FindRecent(garageID uuid.UUID, limit int) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.db.Preload("Staff").
		Where("garage_id = ?", garageID).
		Order("clock_in DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) ClockOut(garageID, staffID uuid.UUID, at time.Time) (int64, error) {
	sub := r.db.Model(&model.Attendance{}).
		Select("id").
		Where("garage_id = ? AND staff_id = ? AND clock_out IS NULL", garageID, staffID).
		Order("clock_in DESC").
		Limit(1)
	res := r.db.Model(&model.Attendance{}).
		Where("id = (?)", sub).
		Update("clock_out", at)
	return res.RowsAffected, res.Error
}
