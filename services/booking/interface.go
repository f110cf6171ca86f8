package booking

import (
	"context"
	"fmt"
	"time"

	"karigar/database/repository"
	"karigar/models"
	"karigar/services/notification"
	"karigar/utils"
)

// BookingService is the booking lifecycle: creation with the slot conflict
// guard, status updates through the transition policy, and reads.
type BookingService interface {
	CreateBooking(ctx context.Context, actor models.Actor, input CreateBookingInput) (*models.Booking, error)
	UpdateBooking(ctx context.Context, bookingID string, actor models.Actor, changes UpdateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error)
	ListBookings(ctx context.Context, actor models.Actor, filter models.BookingFilter) ([]models.Booking, models.Pagination, error)
	DeleteBooking(ctx context.Context, actor models.Actor, bookingID string) error
	SendReminder(ctx context.Context, bookingID string, slotStart time.Time) error
}

// ReminderScheduler queues the pre-visit reminder of a confirmed booking.
type ReminderScheduler interface {
	ScheduleReminder(b *models.Booking) (time.Time, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Bookings  repository.BookingRepository
	Services  repository.ServiceRepository
	Users     repository.UserRepository
	Reviews   repository.ReviewRepository
	Notifier  notification.Emitter
	Locker    utils.SlotLocker
	Reminders ReminderScheduler
	Now       func() time.Time
}

// NewDefaultBookingService wires the service. reminders may be nil.
func NewDefaultBookingService(
	store *repository.Store,
	notifier notification.Emitter,
	locker utils.SlotLocker,
	reminders ReminderScheduler,
) (*DefaultBookingService, error) {
	if store == nil || store.Bookings == nil || store.Services == nil || store.Users == nil || store.Reviews == nil {
		return nil, fmt.Errorf("booking service initialization error: repositories are missing")
	}
	if notifier == nil || locker == nil {
		return nil, fmt.Errorf("booking service initialization error: notifier or slot locker is nil")
	}
	return &DefaultBookingService{
		Bookings:  store.Bookings,
		Services:  store.Services,
		Users:     store.Users,
		Reviews:   store.Reviews,
		Notifier:  notifier,
		Locker:    locker,
		Reminders: reminders,
		Now:       time.Now,
	}, nil
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
