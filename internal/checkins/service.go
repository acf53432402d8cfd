package checkins

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/qr-checkin/backend/internal/guests"
	"github.com/qr-checkin/backend/internal/models"
	"github.com/qr-checkin/backend/internal/settings"
)

var (
	// ErrCheckinDisabled is returned while the global check-in gate is off.
	ErrCheckinDisabled = errors.New("check-in is not open")
	// ErrGuestNotFound is returned when the code resolves to no guest.
	ErrGuestNotFound = errors.New("guest not found")
)

// ValidationError reports the required profile fields that are still empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("incomplete profile: missing %s", strings.Join(e.Missing, ", "))
}

// Outcome distinguishes a fresh check-in from an idempotent repeat.
type Outcome string

const (
	OutcomeRecorded         Outcome = "recorded"
	OutcomeAlreadyCheckedIn Outcome = "already_checked_in"
)

// Result is a successful check-in outcome. For OutcomeAlreadyCheckedIn the
// record is the one written by the first check-in.
type Result struct {
	Outcome Outcome
	Checkin models.Checkin
}

// Broadcaster receives freshly recorded check-ins, e.g. for the live
// dashboard feed. Implementations must not block.
type Broadcaster interface {
	CheckinRecorded(rec models.Checkin, total int)
}

// Service runs the check-in state machine: for a guest code it consults the
// event settings, the guest directory and the ledger, and appends a check-in
// when every gate passes.
type Service struct {
	settings  settings.Store
	guests    guests.Store
	ledger    Ledger
	broadcast Broadcaster
	logger    *zap.Logger
}

// NewService creates the check-in orchestrator. broadcast may be nil.
func NewService(settingsStore settings.Store, guestStore guests.Store, ledger Ledger, broadcast Broadcaster, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		settings:  settingsStore,
		guests:    guestStore,
		ledger:    ledger,
		broadcast: broadcast,
		logger:    logger,
	}
}

// Process executes the check-in for a guest code.
//
// Gates run in a fixed order: the global check-in switch, guest existence,
// profile completeness, then the already-checked-in check. A guest whose
// profile later became incomplete therefore sees the validation failure even
// if they already checked in; this matches the deployed behavior.
func (s *Service) Process(ctx context.Context, guestID string) (*Result, error) {
	guestID = guests.NormalizeID(guestID)

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if !cfg.CheckinEnabled {
		return nil, ErrCheckinDisabled
	}

	guest, err := s.guests.Get(ctx, guestID)
	if err != nil {
		if errors.Is(err, guests.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, fmt.Errorf("lookup guest: %w", err)
	}

	if missing := guest.MissingProfileFields(); len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	if existing, err := s.ledger.Find(ctx, guestID); err == nil {
		return &Result{Outcome: OutcomeAlreadyCheckedIn, Checkin: *existing}, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("find checkin: %w", err)
	}

	rec, err := s.ledger.Append(ctx, guestID, guest.Name)
	if errors.Is(err, ErrAlreadyCheckedIn) {
		// Lost the race against a concurrent request; report the winner's record.
		return &Result{Outcome: OutcomeAlreadyCheckedIn, Checkin: *rec}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("append checkin: %w", err)
	}

	s.logger.Info("guest checked in",
		zap.String("guest_id", rec.ID),
		zap.String("name", rec.Name),
	)
	if s.broadcast != nil {
		total, err := s.ledger.Count(ctx)
		if err != nil {
			total = 0
		}
		s.broadcast.CheckinRecorded(*rec, total)
	}
	return &Result{Outcome: OutcomeRecorded, Checkin: *rec}, nil
}
