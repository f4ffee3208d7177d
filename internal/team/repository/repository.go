// Package repository provides the data access layer for the team module.
package repository

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/createx/registration/internal/team/model"
)

// Repository defines the interface for team data access operations.
type Repository interface {
	// Create inserts a team together with its roster in one transaction.
	// Unique constraint violations are mapped to ErrTeamNameTaken or
	// ErrTransactionRefTaken; the constraints are the final arbiter for
	// concurrent duplicate submissions.
	Create(ctx context.Context, team *model.Team) error

	// GetByCode finds a team with its roster by team code.
	GetByCode(ctx context.Context, teamCode string) (*model.Team, error)

	// List returns all teams with rosters, newest first, optionally limited
	// to the given codes.
	List(ctx context.Context, teamCodes []string) ([]model.Team, error)

	// TeamNameExists reports whether a team with this normalized name exists.
	TeamNameExists(ctx context.Context, normalizedName string) (bool, error)

	// TransactionRefExists reports whether this transaction reference was
	// already submitted.
	TransactionRefExists(ctx context.Context, transactionRef string) (bool, error)

	// CountAll returns the number of submitted teams.
	CountAll(ctx context.Context) (int64, error)

	// CountByStatus returns the number of teams with the given payment status.
	CountByStatus(ctx context.Context, status model.PaymentStatus) (int64, error)

	// Update persists review and notification fields of an existing team.
	Update(ctx context.Context, team *model.Team) error

	// UpdateProofAssetRef points a team's payment proof at its finalized
	// location.
	UpdateProofAssetRef(ctx context.Context, teamCode, assetRef string) error

	// Delete removes a team and its roster.
	Delete(ctx context.Context, teamCode string) error

	// DeleteAll removes every team and roster entry. The code counter is
	// left untouched so codes keep increasing across wipes.
	DeleteAll(ctx context.Context) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create inserts the team row and its participants; gorm creates the
// association rows inside the same transaction.
func (r *repository) Create(ctx context.Context, team *model.Team) error {
	err := r.db.WithContext(ctx).Create(team).Error
	if err != nil {
		return mapDuplicateError(err)
	}
	return nil
}

// mapDuplicateError translates unique violations into the conflicting field's
// sentinel. Constraint names carry the column, for both the postgres
// ("teams_transaction_ref_key") and sqlite ("teams.transaction_ref") spellings.
func mapDuplicateError(err error) error {
	if !model.IsDuplicateKeyError(err) {
		return err
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "transaction_ref"):
		return model.ErrTransactionRefTaken
	case strings.Contains(msg, "team_name"):
		return model.ErrTeamNameTaken
	default:
		return err
	}
}

func (r *repository) GetByCode(ctx context.Context, teamCode string) (*model.Team, error) {
	var team model.Team
	err := r.db.WithContext(ctx).
		Preload("Participants").
		Where("team_code = ?", teamCode).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *repository) List(ctx context.Context, teamCodes []string) ([]model.Team, error) {
	var teams []model.Team
	query := r.db.WithContext(ctx).Preload("Participants").Order("created_at DESC")
	if len(teamCodes) > 0 {
		query = query.Where("team_code IN ?", teamCodes)
	}
	if err := query.Find(&teams).Error; err != nil {
		return nil, err
	}
	if teams == nil {
		teams = []model.Team{}
	}
	return teams, nil
}

func (r *repository) TeamNameExists(ctx context.Context, normalizedName string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Team{}).
		Where("team_name_normalized = ?", normalizedName).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) TransactionRefExists(ctx context.Context, transactionRef string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Team{}).
		Where("transaction_ref = ?", transactionRef).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Team{}).Count(&count).Error
	return count, err
}

func (r *repository) CountByStatus(ctx context.Context, status model.PaymentStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Team{}).
		Where("payment_status = ?", status).
		Count(&count).Error
	return count, err
}

// Update writes the team row only; roster entries are immutable after
// admission.
func (r *repository) Update(ctx context.Context, team *model.Team) error {
	err := r.db.WithContext(ctx).
		Omit("Participants").
		Save(team).Error
	if err != nil {
		return err
	}
	return nil
}

func (r *repository) UpdateProofAssetRef(ctx context.Context, teamCode, assetRef string) error {
	return r.db.WithContext(ctx).
		Model(&model.Team{}).
		Where("team_code = ?", teamCode).
		UpdateColumn("proof_asset_ref", assetRef).Error
}

func (r *repository) Delete(ctx context.Context, teamCode string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_code = ?", teamCode).Delete(&model.Participant{}).Error; err != nil {
			return err
		}
		res := tx.Where("team_code = ?", teamCode).Delete(&model.Team{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrTeamNotFound
		}
		return nil
	})
}

func (r *repository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Participant{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&model.Team{}).Error
	})
}
