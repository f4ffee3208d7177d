// Package handler provides HTTP handlers for event settings endpoints.
package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/createx/registration/internal/config"
	"github.com/createx/registration/internal/settings/model"
	"github.com/createx/registration/internal/settings/repository"
	"github.com/createx/registration/internal/storage"
)

// maxQRSize caps the uploaded payment QR image at 2 MiB.
const maxQRSize = 2 << 20

// Handler handles HTTP requests for settings endpoints.
type Handler struct {
	repo   repository.Repository
	store  storage.Store
	cfg    config.RegistrationConfig
	logger *zap.SugaredLogger
}

// New creates a new settings handler instance.
func New(repo repository.Repository, store storage.Store, cfg config.RegistrationConfig, logger *zap.SugaredLogger) *Handler {
	return &Handler{repo: repo, store: store, cfg: cfg, logger: logger}
}

// PaymentSettings handles GET /payment-settings request. Public: teams need
// the QR code and UPI ID to pay before registering.
func (h *Handler) PaymentSettings(c *gin.Context) {
	qr, err := h.repo.Get(c.Request.Context(), model.KeyPaymentQR)
	if err != nil && !errors.Is(err, model.ErrSettingNotFound) {
		h.logger.Errorw("error reading payment QR setting", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}
	upi, err := h.repo.Get(c.Request.Context(), model.KeyUPIID)
	if err != nil && !errors.Is(err, model.ErrSettingNotFound) {
		h.logger.Errorw("error reading UPI setting", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"qr_asset_ref": qr,
		"upi_id":       upi,
		"amount":       h.cfg.EntryFee,
	})
}

// UpdateLimit handles PUT /admin/limit request.
func (h *Handler) UpdateLimit(c *gin.Context) {
	var req struct {
		Limit int64 `json:"limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Limit <= 0 {
		errorResponse(c, "INVALID_REQUEST", "limit must be a positive integer", http.StatusBadRequest)
		return
	}

	value := strconv.FormatInt(req.Limit, 10)
	if err := h.repo.Set(c.Request.Context(), model.KeyRegistrationLimit, value); err != nil {
		h.logger.Errorw("error updating registration limit", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.Infow("registration limit updated", "limit", req.Limit)
	c.JSON(http.StatusOK, gin.H{"limit": req.Limit})
}

// UpdatePaymentSettings handles PUT /admin/settings/payment request. The
// form may carry a new QR image, a new UPI ID, or both.
func (h *Handler) UpdatePaymentSettings(c *gin.Context) {
	updated := false

	if file, header, err := c.Request.FormFile("qr_code"); err == nil {
		defer file.Close()
		if header.Size > maxQRSize {
			errorResponse(c, "INVALID_REQUEST", "QR image exceeds 2MB", http.StatusBadRequest)
			return
		}
		ref, err := h.store.StoreProvisional(
			c.Request.Context(),
			io.LimitReader(file, maxQRSize),
			header.Header.Get("Content-Type"),
		)
		if err != nil {
			h.logger.Errorw("error storing QR image", "error", err)
			errorResponse(c, "STORAGE_UNAVAILABLE", "could not store QR image", http.StatusServiceUnavailable)
			return
		}
		if ref, err = h.store.Finalize(c.Request.Context(), ref, "payment-qr"); err != nil {
			h.logger.Errorw("error finalizing QR image", "error", err)
			errorResponse(c, "STORAGE_UNAVAILABLE", "could not store QR image", http.StatusServiceUnavailable)
			return
		}
		if err := h.repo.Set(c.Request.Context(), model.KeyPaymentQR, ref); err != nil {
			h.logger.Errorw("error updating payment QR setting", "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
			return
		}
		updated = true
	}

	if upi := c.PostForm("upi_id"); upi != "" {
		if err := h.repo.Set(c.Request.Context(), model.KeyUPIID, upi); err != nil {
			h.logger.Errorw("error updating UPI setting", "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
			return
		}
		updated = true
	}

	if !updated {
		errorResponse(c, "INVALID_REQUEST", "nothing to update", http.StatusBadRequest)
		return
	}
	h.PaymentSettings(c)
}

// Limit handles GET /admin/limit request.
func (h *Handler) Limit(c *gin.Context) {
	limit, err := h.repo.GetInt(c.Request.Context(), model.KeyRegistrationLimit, model.DefaultRegistrationLimit)
	if err != nil {
		h.logger.Errorw("error reading registration limit", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"limit": limit})
}
