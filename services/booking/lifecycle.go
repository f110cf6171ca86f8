package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"karigar/database/repository"
	"karigar/models"
	"karigar/utils"

	"go.uber.org/zap"
)

// UpdateBookingInput is the body of a booking update. Every field is
// presence-tracked: an omitted field is left alone, while an explicit null
// or empty scheduledAt/notes clears the stored value.
type UpdateBookingInput struct {
	Status      models.Optional[string] `json:"status"`
	ScheduledAt models.Optional[string] `json:"scheduledAt"`
	Notes       models.Optional[string] `json:"notes"`
}

// UpdateBooking applies one update request to a booking. Everything is
// validated before the single write, so a rejected request persists nothing.
// A status change emits at most one notification; its failure is logged and
// does not undo the write.
func (s *DefaultBookingService) UpdateBooking(
	ctx context.Context,
	bookingID string,
	actor models.Actor,
	changes UpdateBookingInput,
) (*models.Booking, error) {
	if actor.ID == "" {
		return nil, utils.Unauthorized(msgNotAuthenticated)
	}
	logger := utils.GetLogger().With(
		zap.String("bookingId", bookingID),
		zap.String("actorId", actor.ID),
		zap.String("actorRole", string(actor.Role)),
	)

	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound(msgBookingNotFound)
		}
		return nil, utils.Internal(err)
	}

	var requested models.BookingStatus
	if changes.Status.Set && !changes.Status.Null {
		raw := strings.TrimSpace(changes.Status.Value)
		if raw == "" {
			return nil, utils.Validation(msgEmptyStatus)
		}
		requested = models.BookingStatus(raw)
	}

	decision := Evaluate(PolicyInput{
		Current:    booking.Status,
		Requested:  requested,
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		CustomerID: booking.CustomerID,
		ProviderID: booking.ProviderID,
	})
	if !decision.Allowed {
		logger.Info("Booking update rejected",
			zap.String("reason", string(decision.Reason)),
			zap.String("from", string(booking.Status)),
			zap.String("to", string(requested)),
		)
		return nil, decisionError(decision)
	}

	var scheduledAt *time.Time
	if changes.ScheduledAt.Set {
		scheduledAt, err = parseScheduledAt(changes.ScheduledAt)
		if err != nil {
			return nil, err
		}
	}

	if err := s.hydrate(ctx, booking); err != nil {
		return nil, utils.Internal(err)
	}

	previous := booking.Status
	previousAt := booking.ScheduledAt
	expectedVersion := booking.Version
	statusChanged := requested != "" && requested != previous

	if statusChanged {
		booking.Status = requested
		booking.StatusHistory = append(booking.StatusHistory, models.StatusChange{
			From:      previous,
			To:        requested,
			ActorID:   actor.ID,
			ActorRole: actor.Role,
			Override:  decision.Override,
			At:        s.now(),
		})
	}
	if changes.ScheduledAt.Set {
		booking.ScheduledAt = scheduledAt
	}
	if changes.Notes.Set {
		booking.Notes = changes.Notes.Value
	}

	if err := s.Bookings.Update(ctx, booking, expectedVersion); err != nil {
		switch {
		case errors.Is(err, repository.ErrVersionConflict):
			return nil, utils.Conflict(msgConcurrentUpdate)
		case errors.Is(err, repository.ErrDuplicate):
			return nil, utils.Conflict(msgSlotUnavailable)
		case errors.Is(err, repository.ErrNotFound):
			return nil, utils.NotFound(msgBookingNotFound)
		default:
			return nil, utils.Internal(err)
		}
	}

	if decision.Override {
		logger.Warn("Admin moved booking outside the transition table",
			zap.String("from", string(previous)),
			zap.String("to", string(booking.Status)),
			zap.Bool("override", true),
		)
	}

	if statusChanged {
		logger.Info("Booking status changed",
			zap.String("from", string(previous)),
			zap.String("to", string(booking.Status)),
		)
		s.notifyStatusChange(ctx, booking, actor)
	}
	rescheduled := changes.ScheduledAt.Set && !sameInstant(previousAt, booking.ScheduledAt)
	if booking.Status == models.StatusConfirmed && (statusChanged || rescheduled) {
		s.scheduleReminder(booking)
	}
	return booking, nil
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// parseScheduledAt reads an ISO-8601 timestamp. Null or empty clears it.
func parseScheduledAt(v models.Optional[string]) (*time.Time, error) {
	raw := strings.TrimSpace(v.Value)
	if v.Null || raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, utils.Validation(msgInvalidSchedule)
}
