// Package repository provides the data access layer for settings.
package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/createx/registration/internal/settings/model"
)

// Repository defines the interface for the key/value settings store.
type Repository interface {
	// Get returns the stored value for key, or ErrSettingNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set upserts the value for key.
	Set(ctx context.Context, key, value string) error

	// GetInt returns the value for key parsed as an integer, or fallback
	// when the key is unset or unparsable.
	GetInt(ctx context.Context, key string, fallback int64) (int64, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new settings repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) Get(ctx context.Context, key string) (string, error) {
	var setting model.Setting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", model.ErrSettingNotFound
		}
		return "", err
	}
	return setting.Value, nil
}

func (r *repository) Set(ctx context.Context, key, value string) error {
	setting := model.Setting{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting).Error
}

func (r *repository) GetInt(ctx context.Context, key string, fallback int64) (int64, error) {
	value, err := r.Get(ctx, key)
	if err != nil {
		if errors.Is(err, model.ErrSettingNotFound) {
			return fallback, nil
		}
		return 0, err
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		r.logger.Warnw("setting is not an integer, using fallback", "key", key, "value", value)
		return fallback, nil
	}
	return parsed, nil
}
