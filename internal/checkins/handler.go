package checkins

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qr-checkin/backend/internal/models"
	"github.com/qr-checkin/backend/pkg/response"
)

// Handler handles check-in HTTP endpoints.
type Handler struct {
	service *Service
	ledger  Ledger
	logger  *zap.Logger
}

// NewHandler creates a check-in handler.
func NewHandler(service *Service, ledger Ledger, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, ledger: ledger, logger: logger}
}

// Process handles POST /api/checkin/:guestId.
func (h *Handler) Process(c *gin.Context) {
	guestID := c.Param("guestId")
	result, err := h.service.Process(c.Request.Context(), guestID)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.Is(err, ErrCheckinDisabled):
			response.Forbidden(c, "check-in is not open yet")
		case errors.Is(err, ErrGuestNotFound):
			response.NotFound(c, "guest not found")
		case errors.As(err, &verr):
			response.BadRequest(c, "guest profile is incomplete", gin.H{"missingFields": verr.Missing})
		default:
			h.logger.Error("checkin failed", zap.String("guest_id", guestID), zap.Error(err))
			response.Internal(c, "something went wrong")
		}
		return
	}

	switch result.Outcome {
	case OutcomeAlreadyCheckedIn:
		response.OKMessage(c, "guest already checked in", result.Checkin)
	default:
		response.OKMessage(c, "check-in recorded", result.Checkin)
	}
}

// List handles GET /api/checkins: every check-in, newest first.
func (h *Handler) List(c *gin.Context) {
	list, err := h.ledger.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("list checkins failed", zap.Error(err))
		response.Internal(c, "something went wrong")
		return
	}
	if list == nil {
		list = []models.Checkin{}
	}
	c.JSON(http.StatusOK, gin.H{"total": len(list), "checkins": list})
}

// Export handles GET /api/export: report rows for the organizer spreadsheet.
func (h *Handler) Export(c *gin.Context) {
	list, err := h.ledger.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("export checkins failed", zap.Error(err))
		response.Internal(c, "something went wrong")
		return
	}
	rows := make([]gin.H, 0, len(list))
	for _, rec := range list {
		rows = append(rows, gin.H{
			"id":              rec.ID,
			"name":            rec.Name,
			"checkinTime":     rec.CheckinTime,
			"checkinDate":     rec.CheckinTime.Format("2006-01-02"),
			"checkinTimeOnly": rec.CheckinTime.Format("15:04:05"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"total": len(rows), "data": rows})
}
