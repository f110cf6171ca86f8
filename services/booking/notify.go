package booking

import (
	"context"
	"fmt"
	"time"

	"karigar/models"
	"karigar/utils"

	"go.uber.org/zap"
)

const notifyTimeout = 5 * time.Second

type outgoing struct {
	recipient string
	title     string
	message   string
	kind      models.NotificationType
}

func serviceTitle(b *models.Booking) string {
	if b.Service != nil && b.Service.Title != "" {
		return b.Service.Title
	}
	return "your service"
}

func partyName(u *models.UserSummary, fallback string) string {
	if u != nil && u.Name != "" {
		return u.Name
	}
	return fallback
}

// statusNotification picks the recipient and text for a booking that just
// entered its current status.
func statusNotification(b *models.Booking, actor models.Actor) (outgoing, bool) {
	title := serviceTitle(b)
	provider := partyName(b.Provider, "Your provider")

	switch b.Status {
	case models.StatusConfirmed:
		return outgoing{
			recipient: b.CustomerID,
			title:     "Booking Confirmed",
			message:   fmt.Sprintf("Your booking for %s has been confirmed by %s", title, provider),
			kind:      models.NotificationBooking,
		}, true
	case models.StatusInProgress:
		return outgoing{
			recipient: b.CustomerID,
			title:     "Service Started",
			message:   fmt.Sprintf("%s has started working on your service: %s", provider, title),
			kind:      models.NotificationBooking,
		}, true
	case models.StatusCompleted:
		return outgoing{
			recipient: b.CustomerID,
			title:     "Service Completed",
			message:   fmt.Sprintf("Your service %s has been completed. Please leave a review!", title),
			kind:      models.NotificationBooking,
		}, true
	case models.StatusCancelled:
		recipient := b.CustomerID
		if actor.ID == b.CustomerID {
			recipient = b.ProviderID
		}
		return outgoing{
			recipient: recipient,
			title:     "Booking Cancelled",
			message:   fmt.Sprintf("The booking for %s has been cancelled", title),
			kind:      models.NotificationBooking,
		}, true
	default:
		return outgoing{}, false
	}
}

func (s *DefaultBookingService) notifyStatusChange(ctx context.Context, b *models.Booking, actor models.Actor) {
	if n, ok := statusNotification(b, actor); ok {
		s.emit(ctx, b.ID, n)
	}
}

// emit delivers n best effort. It runs on a context detached from the
// request so a client disconnect after the write does not drop it.
func (s *DefaultBookingService) emit(ctx context.Context, bookingID string, n outgoing) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	if err := s.Notifier.Emit(ctx, n.recipient, n.title, n.message, n.kind); err != nil {
		utils.GetLogger().Error("Failed to emit booking notification",
			zap.String("bookingId", bookingID),
			zap.String("recipient", n.recipient),
			zap.String("title", n.title),
			zap.Error(err),
		)
	}
}
