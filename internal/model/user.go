package model

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents an authenticated user in the system. Each user belongs to
// exactly one garage; the garage id travels in the JWT claims and scopes
// every operation the user performs.
type User struct {
	BaseModel
	GarageID uuid.UUID `gorm:"type:uuid;index;not null" json:"garage_id"`
	Garage   *Garage   `gorm:"foreignKey:GarageID" json:"garage,omitempty" validate:"-"`
	Email    string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string    `gorm:"type:varchar(255);not null" json:"-"`
	FullName string    `gorm:"type:varchar(255)" json:"full_name" validate:"required"`
	IsActive bool      `gorm:"default:true" json:"is_active"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	GarageID uuid.UUID `json:"garage_id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	IsActive bool      `json:"is_active"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:       u.ID,
		GarageID: u.GarageID,
		Email:    u.Email,
		FullName: u.FullName,
		IsActive: u.IsActive,
	}
}
