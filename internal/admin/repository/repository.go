// Package repository provides data access for admin accounts.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/createx/registration/internal/admin/model"
)

// Repository defines the interface for admin data access.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (*model.Admin, error)
	Upsert(ctx context.Context, admin *model.Admin) error
}

type repository struct {
	db *gorm.DB
}

// New creates a new admin repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.WithContext(ctx).First(&admin, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}
	return &admin, nil
}

// Upsert creates the account or refreshes its password hash.
func (r *repository) Upsert(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "updated_at"}),
	}).Create(admin).Error
}
