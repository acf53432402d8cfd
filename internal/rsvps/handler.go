package rsvps

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qr-checkin/backend/internal/guests"
	"github.com/qr-checkin/backend/pkg/response"
)

// Handler handles RSVP HTTP endpoints.
type Handler struct {
	tracker *Tracker
	store   Store
	guests  guests.Store
	logger  *zap.Logger
}

// NewHandler creates an RSVP handler.
func NewHandler(tracker *Tracker, store Store, guestStore guests.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{tracker: tracker, store: store, guests: guestStore, logger: logger}
}

// Record handles POST /api/rsvp/:guestId.
func (h *Handler) Record(c *gin.Context) {
	id := guests.NormalizeID(c.Param("guestId"))
	if _, err := h.guests.Get(c.Request.Context(), id); err != nil {
		if errors.Is(err, guests.ErrNotFound) {
			response.NotFound(c, "guest not found")
			return
		}
		h.logger.Error("rsvp guest lookup failed", zap.String("guest_id", id), zap.Error(err))
		response.Internal(c, "something went wrong")
		return
	}

	var req AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", nil)
		return
	}
	rec, err := h.tracker.RecordAttendance(c.Request.Context(), id, req)
	if err != nil {
		h.logger.Error("record attendance failed", zap.String("guest_id", id), zap.Error(err))
		response.Internal(c, "could not save RSVP")
		return
	}
	response.OK(c, rec)
}

// Get handles GET /api/rsvp/:guestId.
func (h *Handler) Get(c *gin.Context) {
	id := guests.NormalizeID(c.Param("guestId"))
	rec, err := h.tracker.Get(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("get rsvp failed", zap.String("guest_id", id), zap.Error(err))
		response.Internal(c, "something went wrong")
		return
	}
	response.OK(c, rec)
}

// Stats handles GET /api/rsvp/stats.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("rsvp stats failed", zap.Error(err))
		response.Internal(c, "something went wrong")
		return
	}
	response.OK(c, stats)
}
