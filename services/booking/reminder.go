package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"karigar/database/repository"
	"karigar/models"
	"karigar/services/tasks"
	"karigar/utils"

	"go.uber.org/zap"
)

func (s *DefaultBookingService) scheduleReminder(b *models.Booking) {
	if s.Reminders == nil {
		return
	}
	fireAt, err := s.Reminders.ScheduleReminder(b)
	if err != nil {
		utils.GetLogger().Warn("Failed to schedule booking reminder", zap.String("bookingId", b.ID), zap.Error(err))
		return
	}
	if !fireAt.IsZero() {
		utils.GetLogger().Debug("Booking reminder scheduled", zap.String("bookingId", b.ID), zap.Time("fireAt", fireAt))
	}
}

// SendReminder notifies the customer of an upcoming visit. Bookings that
// are gone or no longer confirmed are skipped, as are reminders planned for
// a slotStart the booking has since moved away from. A zero slotStart skips
// that check.
func (s *DefaultBookingService) SendReminder(ctx context.Context, bookingID string, slotStart time.Time) error {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load booking %s for reminder: %w", bookingID, err)
	}
	if booking.Status != models.StatusConfirmed {
		utils.GetLogger().Debug("Skipping reminder", zap.String("bookingId", bookingID), zap.String("status", string(booking.Status)))
		return nil
	}
	if !slotStart.IsZero() {
		current, err := tasks.SlotStart(booking)
		if err != nil || !current.Equal(slotStart) {
			utils.GetLogger().Debug("Skipping reminder for a moved slot",
				zap.String("bookingId", bookingID),
				zap.Time("plannedFor", slotStart),
			)
			return nil
		}
	}
	if err := s.hydrate(ctx, booking); err != nil {
		return err
	}

	message := fmt.Sprintf("Reminder: %s is scheduled for %s at %s",
		serviceTitle(booking), booking.ScheduledDate, booking.ScheduledTime)
	if err := s.Notifier.Emit(ctx, booking.CustomerID, "Upcoming Booking", message, models.NotificationBooking); err != nil {
		return fmt.Errorf("failed to emit reminder for booking %s: %w", bookingID, err)
	}
	return nil
}
