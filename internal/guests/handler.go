package guests

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qr-checkin/backend/internal/models"
	"github.com/qr-checkin/backend/pkg/response"
)

// Handler handles guest profile HTTP endpoints.
type Handler struct {
	store  Store
	logger *zap.Logger
}

// NewHandler creates a guests handler.
func NewHandler(store Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, logger: logger}
}

// Get handles GET /api/guest/:guestId.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("guestId")
	g, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "guest not found")
			return
		}
		h.logger.Error("get guest failed", zap.String("guest_id", id), zap.Error(err))
		response.Internal(c, "something went wrong")
		return
	}
	response.OK(c, g)
}

// Update handles POST /api/guest/:guestId. Only supplied fields are written.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("guestId")
	var upd models.GuestProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		response.BadRequest(c, "invalid request body", nil)
		return
	}
	if err := h.store.UpdateProfile(c.Request.Context(), id, upd); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "guest not found")
			return
		}
		h.logger.Error("update guest failed", zap.String("guest_id", id), zap.Error(err))
		response.Internal(c, "could not save guest profile")
		return
	}
	response.OK(c, nil)
}
