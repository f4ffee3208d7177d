// Package model provides the settings domain model.
package model

import (
	"errors"
	"time"
)

// Setting keys used by the application.
const (
	// KeyRegistrationLimit is the administrator-configurable ceiling on
	// verified teams.
	KeyRegistrationLimit = "registration_limit"
	// KeyPaymentQR references the payment QR code asset.
	KeyPaymentQR = "payment_qr"
	// KeyUPIID is the UPI payment address shown on the registration page.
	KeyUPIID = "upi_id"
)

// DefaultRegistrationLimit applies when no limit setting has been stored.
const DefaultRegistrationLimit = 75

// ErrSettingNotFound indicates the requested setting key has no value.
var ErrSettingNotFound = errors.New("setting not found")

// Setting is one mutable operational parameter.
// Matches the settings table schema.
type Setting struct {
	Key       string    `gorm:"primaryKey;column:key;type:varchar(64)" json:"key"`
	Value     string    `gorm:"column:value;type:text;not null"        json:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"             json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Setting) TableName() string {
	return "settings"
}
