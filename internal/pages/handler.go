package pages

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qr-checkin/backend/internal/checkins"
	"github.com/qr-checkin/backend/internal/guests"
	"github.com/qr-checkin/backend/internal/settings"
)

const recentLimit = 10

// Handler renders the HTML pages: the stats dashboard and the personalized
// check-in page behind each guest's QR code.
type Handler struct {
	guests   guests.Store
	ledger   checkins.Ledger
	settings *settings.Service
	logger   *zap.Logger
}

// NewHandler creates a pages handler.
func NewHandler(guestStore guests.Store, ledger checkins.Ledger, settingsService *settings.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{guests: guestStore, ledger: ledger, settings: settingsService, logger: logger}
}

// Home handles GET /: check-in totals and the most recent arrivals.
func (h *Handler) Home(c *gin.Context) {
	ctx := c.Request.Context()
	total, err := h.ledger.Count(ctx)
	if err != nil {
		h.logger.Error("count checkins failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}
	recent, err := h.ledger.Recent(ctx, recentLimit)
	if err != nil {
		h.logger.Error("recent checkins failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}
	cfg, err := h.settings.Get(ctx)
	if err != nil {
		h.logger.Error("load settings failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}
	c.HTML(http.StatusOK, "home.html", gin.H{
		"Total":          total,
		"Recent":         recent,
		"CheckinEnabled": cfg.CheckinEnabled,
	})
}

// Checkin handles GET /checkin/:guestId, the page opened by scanning a QR
// code. Unknown codes get a 404 page.
func (h *Handler) Checkin(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("guestId")
	guest, err := h.guests.Get(ctx, id)
	if err != nil {
		if errors.Is(err, guests.ErrNotFound) {
			c.HTML(http.StatusNotFound, "not_found.html", gin.H{"GuestID": id})
			return
		}
		h.logger.Error("checkin page guest lookup failed", zap.String("guest_id", id), zap.Error(err))
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	cfg, err := h.settings.Get(ctx)
	if err != nil {
		h.logger.Error("load settings failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	checkedIn := false
	if _, err := h.ledger.Find(ctx, guest.ID); err == nil {
		checkedIn = true
	} else if !errors.Is(err, checkins.ErrNotFound) {
		h.logger.Error("checkin page ledger lookup failed", zap.String("guest_id", guest.ID), zap.Error(err))
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	c.HTML(http.StatusOK, "checkin.html", gin.H{
		"Guest":          guest,
		"CheckinEnabled": cfg.CheckinEnabled,
		"CheckedIn":      checkedIn,
		"EventDate":      cfg.EventDate,
		"EventTime":      cfg.EventTime,
		"EventLocation":  cfg.EventLocation,
	})
}
