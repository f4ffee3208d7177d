// Package service provides admin authentication logic.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/createx/registration/internal/admin/model"
	"github.com/createx/registration/internal/admin/repository"
	"github.com/createx/registration/internal/config"
	"github.com/createx/registration/internal/middleware"
)

// Service defines the interface for admin authentication operations.
type Service interface {
	// Login verifies credentials and returns a signed session token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)

	// Seed provisions the bootstrap admin account from configuration.
	// A no-op when no admin password is configured.
	Seed(ctx context.Context) error
}

type service struct {
	repo   repository.Repository
	cfg    config.AuthConfig
	logger *zap.SugaredLogger
}

// New creates a new admin service instance.
func New(repo repository.Repository, cfg config.AuthConfig, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, cfg: cfg, logger: logger}
}

func (s *service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	admin, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	token, err := middleware.SignAdminToken(s.cfg.JWTSecret, admin.Username, s.cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("admin logged in", "username", admin.Username)
	return &model.LoginResponse{
		Token:     token,
		Username:  admin.Username,
		ExpiresAt: time.Now().Add(s.cfg.TokenTTL),
	}, nil
}

func (s *service) Seed(ctx context.Context) error {
	if s.cfg.AdminPassword == "" {
		s.logger.Warnw("no admin password configured, skipping admin bootstrap")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	err = s.repo.Upsert(ctx, &model.Admin{
		Username:     s.cfg.AdminUsername,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return err
	}

	s.logger.Infow("admin account provisioned", "username", s.cfg.AdminUsername)
	return nil
}
