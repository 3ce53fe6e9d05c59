package model

import "github.com/google/uuid"

// SettingKeyBiometricDevices holds the registered device list as a JSON
// array in the setting value.
const SettingKeyBiometricDevices = "biometric_devices"

// Setting is a per-garage key/value row. Values are opaque strings; callers
// that store structured data (device lists, invoice settings) serialize JSON
// into Value themselves.
type Setting struct {
	BaseModel
	GarageID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_garage_setting;not null" json:"garage_id"`
	SettingKey   string    `gorm:"type:varchar(100);uniqueIndex:idx_garage_setting;not null" json:"setting_key" validate:"required"`
	SettingValue string    `gorm:"type:text" json:"setting_value"`
}

// BiometricDevice is one entry in the biometric_devices setting.
type BiometricDevice struct {
	Name      string `json:"name"`
	IPAddress string `json:"ip_address"`
	Port      int    `json:"port"`
	Status    string `json:"status"`
}
