// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/createx/registration/internal/config"
	"github.com/createx/registration/internal/mailer"
	settingsRepo "github.com/createx/registration/internal/settings/repository"
	"github.com/createx/registration/internal/storage"
	"github.com/createx/registration/internal/team/allocator"
	"github.com/createx/registration/internal/team/handler"
	"github.com/createx/registration/internal/team/repository"
	"github.com/createx/registration/internal/team/service"
	"github.com/createx/registration/pkg/tasks"
)

// Deps carries the shared infrastructure team routes are wired with.
type Deps struct {
	Logger       *zap.SugaredLogger
	Store        storage.Store
	Notifier     mailer.Notifier
	Runner       *tasks.Runner
	Registration config.RegistrationConfig
	AdminAuth    gin.HandlerFunc
}

// RegisterRoutes registers team module routes under the given group.
func RegisterRoutes(api *gin.RouterGroup, db *gorm.DB, deps Deps) {
	repo := repository.New(db, deps.Logger)
	alloc := allocator.New(db, deps.Registration.CodePrefix, deps.Logger)
	settings := settingsRepo.New(db, deps.Logger)
	svc := service.New(repo, alloc, settings, deps.Store, deps.Notifier, deps.Runner, deps.Registration, deps.Logger)
	h := handler.New(svc, deps.Store, deps.Logger)

	api.GET("/stats", h.Stats)
	api.POST("/register", h.Register)
	api.GET("/check-name", h.CheckName)
	api.GET("/status", h.CheckStatus)
	api.GET("/assets/:ref", h.Asset)

	admin := api.Group("/admin", deps.AdminAuth)
	admin.POST("/register", h.RegisterByAdmin)
	admin.GET("/teams", h.ListTeams)
	admin.PUT("/verify", h.Review)
	admin.POST("/resend-email/:teamCode", h.ResendEmail)
	admin.POST("/export", h.Export)
	admin.DELETE("/team/:teamCode", h.DeleteTeam)
	admin.DELETE("/clear-all", h.DeleteAllTeams)
}
