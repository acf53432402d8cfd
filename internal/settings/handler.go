package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qr-checkin/backend/internal/models"
	"github.com/qr-checkin/backend/pkg/response"
)

// Handler handles admin event settings endpoints.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a settings handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// Get handles GET /api/admin/event-settings.
func (h *Handler) Get(c *gin.Context) {
	s, err := h.service.Get(c.Request.Context())
	if err != nil {
		h.logger.Error("get settings failed", zap.Error(err))
		response.Internal(c, "something went wrong")
		return
	}
	response.OK(c, s)
}

// ToggleCheckin handles POST /api/admin/toggle-checkin.
func (h *Handler) ToggleCheckin(c *gin.Context) {
	s, err := h.service.ToggleCheckin(c.Request.Context())
	if err != nil {
		h.logger.Error("toggle checkin failed", zap.Error(err))
		response.Internal(c, "could not toggle check-in")
		return
	}
	h.logger.Info("checkin gate toggled", zap.Bool("checkin_enabled", s.CheckinEnabled))
	c.JSON(http.StatusOK, gin.H{"success": true, "checkinEnabled": s.CheckinEnabled})
}

// Update handles POST /api/admin/event-settings.
func (h *Handler) Update(c *gin.Context) {
	var upd models.EventSettingsUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		response.BadRequest(c, "invalid request body", nil)
		return
	}
	s, err := h.service.Update(c.Request.Context(), upd)
	if err != nil {
		h.logger.Error("update settings failed", zap.Error(err))
		response.Internal(c, "could not save event settings")
		return
	}
	response.OK(c, s)
}
