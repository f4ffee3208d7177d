// Package handler provides HTTP handlers for team endpoints.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/createx/registration/internal/storage"
	teamModel "github.com/createx/registration/internal/team/model"
	"github.com/createx/registration/internal/team/service"
)

// maxProofSize caps uploaded payment screenshots at 5 MiB.
const maxProofSize = 5 << 20

// Handler handles HTTP requests for team endpoints.
type Handler struct {
	service service.Service
	store   storage.Store
	logger  *zap.SugaredLogger
}

// New creates a new team handler instance.
func New(svc service.Service, store storage.Store, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, store: store, logger: logger}
}

// Stats handles GET /stats request.
func (h *Handler) Stats(c *gin.Context) {
	resp, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error getting stats", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Register handles POST /register request. The submission is multipart: team
// fields plus the payment screenshot.
func (h *Handler) Register(c *gin.Context) {
	req, ok := h.parseRegistrationForm(c)
	if !ok {
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.registrationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RegisterByAdmin handles POST /admin/register request. Same form as the
// public endpoint; the team is admitted as verified and bypasses the
// capacity gate.
func (h *Handler) RegisterByAdmin(c *gin.Context) {
	req, ok := h.parseRegistrationForm(c)
	if !ok {
		return
	}

	resp, err := h.service.RegisterByAdmin(c.Request.Context(), req)
	if err != nil {
		h.registrationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// parseRegistrationForm reads the multipart submission, stores the uploaded
// screenshot provisionally and assembles the register request. On failure it
// writes the error response and returns ok=false.
func (h *Handler) parseRegistrationForm(c *gin.Context) (*teamModel.RegisterRequest, bool) {
	var req teamModel.RegisterRequest
	req.TeamName = c.PostForm("team_name")
	req.TransactionRef = c.PostForm("transaction_ref")

	if err := json.Unmarshal([]byte(c.PostForm("leader")), &req.Leader); err != nil {
		errorResponse(c, "INVALID_REQUEST", "leader must be a JSON object", http.StatusBadRequest)
		return nil, false
	}
	if err := json.Unmarshal([]byte(c.PostForm("members")), &req.Members); err != nil {
		errorResponse(c, "INVALID_REQUEST", "members must be a JSON array", http.StatusBadRequest)
		return nil, false
	}

	file, header, err := c.Request.FormFile("screenshot")
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "payment screenshot is required", http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()
	if header.Size > maxProofSize {
		errorResponse(c, "INVALID_REQUEST", "payment screenshot exceeds 5MB", http.StatusBadRequest)
		return nil, false
	}

	ref, err := h.store.StoreProvisional(
		c.Request.Context(),
		io.LimitReader(file, maxProofSize),
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		h.logger.Errorw("error storing payment screenshot", "error", err)
		errorResponse(c, "STORAGE_UNAVAILABLE", "could not store payment screenshot", http.StatusServiceUnavailable)
		return nil, false
	}
	req.ProofAssetRef = ref

	return &req, true
}

func (h *Handler) registrationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, teamModel.ErrRegistrationClosed):
		errorResponse(c, "REGISTRATION_CLOSED", "registration limit reached", http.StatusBadRequest)
	case errors.Is(err, teamModel.ErrTeamNameTaken):
		errorResponse(c, "TEAM_EXISTS", "team_name already exists", http.StatusBadRequest)
	case errors.Is(err, teamModel.ErrTransactionRefTaken):
		errorResponse(c, "TRANSACTION_REF_EXISTS", "transaction_ref already used", http.StatusBadRequest)
	case teamModel.IsValidationError(err):
		errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, teamModel.ErrStorageUnavailable):
		errorResponse(c, "STORAGE_UNAVAILABLE", "persistence temporarily unavailable", http.StatusServiceUnavailable)
	default:
		h.logger.Errorw("error registering team", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}

// CheckName handles GET /check-name request.
func (h *Handler) CheckName(c *gin.Context) {
	teamName := c.Query("team_name")
	available, err := h.service.TeamNameAvailable(c.Request.Context(), teamName)
	if err != nil {
		if teamModel.IsValidationError(err) {
			errorResponse(c, "INVALID_REQUEST", "team_name parameter is required", http.StatusBadRequest)
			return
		}
		h.logger.Errorw("error checking team name", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}

// CheckStatus handles GET /status request.
func (h *Handler) CheckStatus(c *gin.Context) {
	teamCode := c.Query("team_code")
	registerNumber := c.Query("register_number")
	if teamCode == "" || registerNumber == "" {
		errorResponse(c, "INVALID_REQUEST", "team_code and register_number parameters are required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.CheckStatus(c.Request.Context(), teamCode, registerNumber)
	if err != nil {
		if errors.Is(err, teamModel.ErrTeamNotFound) {
			notFoundResponse(c, "team not found")
			return
		}
		h.logger.Errorw("error checking status", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListTeams handles GET /admin/teams request.
func (h *Handler) ListTeams(c *gin.Context) {
	teams, err := h.service.ListTeams(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error listing teams", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teams": teams, "count": len(teams)})
}

// Review handles PUT /admin/verify request.
func (h *Handler) Review(c *gin.Context) {
	var req teamModel.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Review(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, teamModel.ErrTeamNotFound):
			notFoundResponse(c, "team not found")
		case errors.Is(err, teamModel.ErrInvalidDecision):
			errorResponse(c, "INVALID_REQUEST", "decision must be Verified or Rejected", http.StatusBadRequest)
		case errors.Is(err, teamModel.ErrRejectionReasonRequired):
			errorResponse(c, "INVALID_REQUEST", "rejection_reason is required when rejecting", http.StatusBadRequest)
		default:
			h.logger.Errorw("error reviewing payment", "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResendEmail handles POST /admin/resend-email/:teamCode request.
func (h *Handler) ResendEmail(c *gin.Context) {
	resp, err := h.service.ResendDecisionEmail(c.Request.Context(), c.Param("teamCode"))
	if err != nil {
		if errors.Is(err, teamModel.ErrTeamNotFound) {
			notFoundResponse(c, "team not found")
			return
		}
		h.logger.Errorw("error resending email", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Export handles POST /admin/export request. Streams CSV.
func (h *Handler) Export(c *gin.Context) {
	var req teamModel.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	filename := fmt.Sprintf("teams-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.service.Export(c.Request.Context(), &req, c.Writer); err != nil {
		// Headers may already be out; log and abort the stream.
		h.logger.Errorw("error exporting teams", "error", err)
		c.Abort()
	}
}

// DeleteTeam handles DELETE /admin/team/:teamCode request.
func (h *Handler) DeleteTeam(c *gin.Context) {
	if err := h.service.DeleteTeam(c.Request.Context(), c.Param("teamCode")); err != nil {
		if errors.Is(err, teamModel.ErrTeamNotFound) {
			notFoundResponse(c, "team not found")
			return
		}
		h.logger.Errorw("error deleting team", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// DeleteAllTeams handles DELETE /admin/clear-all request. The team code
// counter is left untouched so codes are never reissued.
func (h *Handler) DeleteAllTeams(c *gin.Context) {
	if err := h.service.DeleteAllTeams(c.Request.Context()); err != nil {
		h.logger.Errorw("error clearing teams", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// Asset handles GET /assets/:ref request, serving a stored asset.
func (h *Handler) Asset(c *gin.Context) {
	rc, err := h.store.Open(c.Request.Context(), c.Param("ref"))
	if err != nil {
		notFoundResponse(c, "asset not found")
		return
	}
	defer rc.Close()

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		h.logger.Errorw("error streaming asset", "ref", c.Param("ref"), "error", err)
	}
}
