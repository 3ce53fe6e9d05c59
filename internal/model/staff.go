package model

import (
	"time"

	"github.com/google/uuid"
)

// Staff is a garage employee; names feed the assigned-staff options on
// job cards and attendance links back here.
type Staff struct {
	BaseModel
	GarageID uuid.UUID `gorm:"type:uuid;index;not null" json:"garage_id"`
	Name     string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone    string    `gorm:"type:varchar(20)" json:"phone"`
	Role     string    `gorm:"type:varchar(100)" json:"role"`
}

// Attendance is one clock-in record, usually written by a biometric device
// integration. ClockOut is nil while the shift is open.
type Attendance struct {
	BaseModel
	GarageID uuid.UUID  `gorm:"type:uuid;index;not null" json:"garage_id"`
	StaffID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"staff_id" validate:"uuid_required"`
	Staff    *Staff     `gorm:"foreignKey:StaffID" json:"staff,omitempty" validate:"-"`
	ClockIn  time.Time  `gorm:"not null" json:"clock_in"`
	ClockOut *time.Time `json:"clock_out"`
}

// HoursWorked returns the worked duration in hours, 0 while the shift is
// still open, clamped so bad clock data never yields a negative.
func (a Attendance) HoursWorked() float64 {
	if a.ClockOut == nil {
		return 0
	}
	h := a.ClockOut.Sub(a.ClockIn).Hours()
	if h < 0 {
		return 0
	}
	return h
}
