// Package handler provides HTTP handlers for admin authentication.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	adminModel "github.com/createx/registration/internal/admin/model"
	"github.com/createx/registration/internal/admin/service"
)

// Handler handles HTTP requests for admin authentication.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new admin handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Login handles POST /admin/login request.
func (h *Handler) Login(c *gin.Context) {
	var req adminModel.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "username and password are required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, adminModel.ErrInvalidCredentials) {
			errorResponse(c, "UNAUTHORIZED", "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.Errorw("error logging in admin", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, resp)
}
