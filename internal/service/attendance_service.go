package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/narendrababuts/AutoShopPro/internal/model"
	"github.com/narendrababuts/AutoShopPro/internal/repository"
	"github.com/narendrababuts/AutoShopPro/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const attendanceFeedLimit = 20

// AttendanceRecord is an attendance row flattened for display, with the
// staff name joined in and hours derived.
type AttendanceRecord struct {
	ID          uuid.UUID  `json:"id"`
	StaffID     uuid.UUID  `json:"staff_id"`
	StaffName   string     `json:"staff_name"`
	ClockIn     time.Time  `json:"clock_in"`
	ClockOut    *time.Time `json:"clock_out"`
	HoursWorked *float64   `json:"hours_worked"`
}

type AttendanceService interface {
	RecentRecords(garageID uuid.UUID) ([]AttendanceRecord, error)
	ClockIn(garageID uuid.UUID, record *model.Attendance, userID string) error
	ClockOut(garageID, staffID uuid.UUID) error
	Devices(garageID uuid.UUID) ([]model.BiometricDevice, error)
	SaveDevices(garageID uuid.UUID, devices []model.BiometricDevice) error
}

type attendanceService struct {
	repo        repository.AttendanceRepository
	settingRepo repository.SettingRepository
}

func NewAttendanceService(repo repository.AttendanceRepository, settingRepo repository.SettingRepository) AttendanceService {
	return &attendanceService{repo: repo, settingRepo: settingRepo}
}

func (s *attendanceService) RecentRecords(garageID uuid.UUID) ([]AttendanceRecord, error) {
	if garageID == uuid.Nil {
		return nil, ErrNoGarage
	}
	rows, err := s.repo.FindRecent(garageID, attendanceFeedLimit)
	if err != nil {
		return nil, err
	}

	records := make([]AttendanceRecord, 0, len(rows))
	for _, row := range rows {
		rec := AttendanceRecord{
			ID:        row.ID,
			StaffID:   row.StaffID,
			StaffName: "Unknown Staff",
			ClockIn:   row.ClockIn,
			ClockOut:  row.ClockOut,
		}
		if row.Staff != nil {
			rec.StaffName = row.Staff.Name
		}
		if row.ClockOut != nil {
			hours := row.HoursWorked()
			rec.HoursWorked = &hours
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *attendanceService) ClockIn(garageID uuid.UUID, record *model.Attendance, userID string) error {
	if garageID == uuid.Nil {
		return ErrNoGarage
	}
	if err := validator.CheckStruct(record); err != nil {
		return err
	}

	record.GarageID = garageID
	record.CreatedBy = userID
	record.UpdatedBy = userID
	if record.ClockIn.IsZero() {
		record.ClockIn = time.Now()
	}

	if err := s.repo.Create(record); err != nil {
		return &PersistenceError{Op: "record attendance", Err: err}
	}
	return nil
}

func (s *attendanceService) ClockOut(garageID, staffID uuid.UUID) error {
	if garageID == uuid.Nil {
		return ErrNoGarage
	}
	rows, err := s.repo.ClockOut(garageID, staffID, time.Now())
	if err != nil {
		return &PersistenceError{Op: "clock out", Err: err}
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Devices reads the registered biometric devices from the settings row.
// A missing row means no devices are registered yet.
func (s *attendanceService) Devices(garageID uuid.UUID) ([]model.BiometricDevice, error) {
	if garageID == uuid.Nil {
		return nil, ErrNoGarage
	}
	setting, err := s.settingRepo.Get(garageID, model.SettingKeyBiometricDevices)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []model.BiometricDevice{}, nil
		}
		return nil, err
	}

	var devices []model.BiometricDevice
	if setting.SettingValue != "" {
		if err := json.Unmarshal([]byte(setting.SettingValue), &devices); err != nil {
			return nil, fmt.Errorf("corrupt device registry: %w", err)
		}
	}
	return devices, nil
}

func (s *attendanceService) SaveDevices(garageID uuid.UUID, devices []model.BiometricDevice) error {
	if garageID == uuid.Nil {
		return ErrNoGarage
	}
	raw, err := json.Marshal(devices)
	if err != nil {
		return err
	}
	if err := s.settingRepo.Upsert(garageID, model.SettingKeyBiometricDevices, string(raw)); err != nil {
		return &PersistenceError{Op: "save device registry", Err: err}
	}
	return nil
}
