// Package router provides settings module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/createx/registration/internal/config"
	"github.com/createx/registration/internal/settings/handler"
	"github.com/createx/registration/internal/settings/repository"
	"github.com/createx/registration/internal/storage"
)

// Deps carries the shared infrastructure settings routes are wired with.
type Deps struct {
	Logger       *zap.SugaredLogger
	Store        storage.Store
	Registration config.RegistrationConfig
	AdminAuth    gin.HandlerFunc
}

// RegisterRoutes registers settings module routes under the given group.
func RegisterRoutes(api *gin.RouterGroup, db *gorm.DB, deps Deps) {
	repo := repository.New(db, deps.Logger)
	h := handler.New(repo, deps.Store, deps.Registration, deps.Logger)

	api.GET("/payment-settings", h.PaymentSettings)

	admin := api.Group("/admin", deps.AdminAuth)
	admin.GET("/limit", h.Limit)
	admin.PUT("/limit", h.UpdateLimit)
	admin.GET("/settings/payment", h.PaymentSettings)
	admin.PUT("/settings/payment", h.UpdatePaymentSettings)
}
