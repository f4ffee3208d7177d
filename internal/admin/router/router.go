// Package router provides admin module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/createx/registration/internal/admin/handler"
	"github.com/createx/registration/internal/admin/repository"
	"github.com/createx/registration/internal/admin/service"
	"github.com/createx/registration/internal/config"
)

// RegisterRoutes registers admin authentication routes under the given group.
func RegisterRoutes(api *gin.RouterGroup, db *gorm.DB, cfg config.AuthConfig, logger *zap.SugaredLogger) {
	repo := repository.New(db)
	svc := service.New(repo, cfg, logger)
	h := handler.New(svc, logger)

	api.POST("/admin/login", h.Login)
}

// NewService builds the admin service for bootstrap seeding.
func NewService(db *gorm.DB, cfg config.AuthConfig, logger *zap.SugaredLogger) service.Service {
	return service.New(repository.New(db), cfg, logger)
}
