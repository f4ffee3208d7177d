// Package model contains admin account types and errors.
package model

import (
	"errors"
	"time"
)

// ErrInvalidCredentials is returned for an unknown username or wrong
// password. Callers must not distinguish the two cases.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Admin is a collaborator account that can review payments and manage
// settings.
// Matches the admins table schema.
type Admin struct {
	Username     string    `gorm:"primaryKey;column:username;type:varchar(64)" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(128);not null" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Admin) TableName() string {
	return "admins"
}

// LoginRequest carries admin login credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the signed session token.
type LoginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}
