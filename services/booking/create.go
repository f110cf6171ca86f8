package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"karigar/database/repository"
	"karigar/models"
	"karigar/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBookingInput is the body of a booking request.
type CreateBookingInput struct {
	ServiceID     string `json:"serviceId"`
	ScheduledDate string `json:"scheduledDate"`
	ScheduledTime string `json:"scheduledTime"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

// normalizeDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the
// calendar date used as the slot key.
func normalizeDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.Format("2006-01-02"), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC().Format("2006-01-02"), nil
	}
	return "", fmt.Errorf("unparseable date %q", raw)
}

// CreateBooking books a service slot for a customer. The date and time are
// stored in canonical form. At most one active booking may hold a
// provider's (date, time) slot: a Redis lock serialises
// concurrent attempts, the lookup rejects taken slots, and the unique slot
// index rejects whatever slips past both.
func (s *DefaultBookingService) CreateBooking(
	ctx context.Context,
	actor models.Actor,
	input CreateBookingInput,
) (*models.Booking, error) {
	if actor.ID == "" {
		return nil, utils.Unauthorized(msgNotAuthenticated)
	}
	if actor.Role != models.RoleCustomer {
		return nil, utils.Forbidden(msgCustomersOnly)
	}

	input.ServiceID = strings.TrimSpace(input.ServiceID)
	input.ScheduledTime = strings.TrimSpace(input.ScheduledTime)
	input.Address = strings.TrimSpace(input.Address)
	if input.ServiceID == "" || strings.TrimSpace(input.ScheduledDate) == "" ||
		input.ScheduledTime == "" || input.Address == "" {
		return nil, utils.Validation(msgRequiredFields)
	}
	date, err := normalizeDate(input.ScheduledDate)
	if err != nil {
		return nil, utils.Validation(msgInvalidDate)
	}
	clock, err := models.NormalizeTimeOfDay(input.ScheduledTime)
	if err != nil {
		return nil, utils.Validation(msgInvalidTime)
	}

	service, err := s.Services.GetByID(ctx, input.ServiceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound(msgServiceNotFound)
		}
		return nil, utils.Internal(err)
	}
	if !service.IsActive {
		return nil, utils.NotFound(msgServiceNotFound)
	}
	if service.ProviderID == actor.ID {
		return nil, utils.Validation(msgSelfBooking)
	}

	logger := utils.GetLogger().With(
		zap.String("providerId", service.ProviderID),
		zap.String("scheduledDate", date),
		zap.String("scheduledTime", clock),
	)

	release, err := s.Locker.Acquire(ctx, service.ProviderID, date, clock)
	switch {
	case errors.Is(err, utils.ErrSlotLocked):
		return nil, utils.Conflict(msgSlotUnavailable)
	case err != nil:
		// The unique slot index still guards the insert.
		logger.Warn("Slot lock unavailable, relying on slot index", zap.Error(err))
	default:
		defer release()
	}

	if _, err := s.Bookings.FindActiveInSlot(ctx, service.ProviderID, date, clock); err == nil {
		return nil, utils.Conflict(msgSlotUnavailable)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, utils.Internal(err)
	}

	booking := &models.Booking{
		ID:            uuid.New().String(),
		Status:        models.StatusRequested,
		CustomerID:    actor.ID,
		ProviderID:    service.ProviderID,
		ServiceID:     service.ID,
		ScheduledDate: date,
		ScheduledTime: clock,
		Address:       input.Address,
		Notes:         strings.TrimSpace(input.Notes),
		TotalPrice:    service.Price,
		StatusHistory: []models.StatusChange{{
			To:        models.StatusRequested,
			ActorID:   actor.ID,
			ActorRole: actor.Role,
			At:        s.now(),
		}},
	}

	if err := s.Bookings.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			logger.Info("Slot taken by a concurrent booking")
			return nil, utils.Conflict(msgSlotUnavailable)
		}
		return nil, utils.Internal(err)
	}

	if err := s.hydrate(ctx, booking); err != nil {
		logger.Warn("Failed to load booking relations", zap.String("bookingId", booking.ID), zap.Error(err))
		booking.Service = service
	}

	logger.Info("Booking created", zap.String("bookingId", booking.ID), zap.String("customerId", actor.ID))

	customer := partyName(booking.Customer, actor.Name)
	if customer == "" {
		customer = "A customer"
	}
	s.emit(ctx, booking.ID, outgoing{
		recipient: booking.ProviderID,
		title:     "New Booking Request",
		message:   fmt.Sprintf("%s has requested your service: %s", customer, service.Title),
		kind:      models.NotificationBooking,
	})
	return booking, nil
}
