package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"karigar/models"

	"github.com/hibiken/asynq"
)

const TypeBookingReminder = "booking:reminder"

// ReminderPayload names the booking to remind about and the slot start the
// reminder was planned for. The worker re-reads the booking, so a reminder
// for a cancelled or rescheduled booking is dropped.
type ReminderPayload struct {
	BookingID string    `json:"bookingId"`
	SlotStart time.Time `json:"slotStart"`
}

// ReminderTaskID is unique per booking and slot start, so moving a booking
// queues a fresh reminder instead of colliding with the old one.
func ReminderTaskID(p ReminderPayload) string {
	return fmt.Sprintf("reminder:%s:%d", p.BookingID, p.SlotStart.Unix())
}

// NewReminderTask builds the reminder task processed at fireAt.
func NewReminderTask(payload ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode reminder payload: %w", err)
	}
	task := asynq.NewTask(TypeBookingReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(ReminderTaskID(payload)),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// ParseReminderPayload decodes a reminder task.
func ParseReminderPayload(task *asynq.Task) (ReminderPayload, error) {
	var p ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid reminder payload: %w", err)
	}
	return p, nil
}

// SlotStart resolves when the booked slot begins. ScheduledAt wins when set;
// otherwise the date and time-of-day are read in UTC.
func SlotStart(b *models.Booking) (time.Time, error) {
	if b.ScheduledAt != nil {
		return b.ScheduledAt.UTC(), nil
	}
	clock, err := models.NormalizeTimeOfDay(b.ScheduledTime)
	if err == nil {
		var t time.Time
		if t, err = time.Parse("2006-01-02 "+models.TimeOfDayLayout, b.ScheduledDate+" "+clock); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot resolve start of slot %s %s", b.ScheduledDate, b.ScheduledTime)
}

// ReminderScheduler enqueues reminders ahead of confirmed bookings.
type ReminderScheduler struct {
	client Enqueuer
	lead   time.Duration
	now    func() time.Time
}

// NewReminderScheduler reminds customers lead before their slot.
func NewReminderScheduler(client Enqueuer, lead time.Duration) *ReminderScheduler {
	return &ReminderScheduler{client: client, lead: lead, now: time.Now}
}

// ScheduleReminder enqueues a reminder lead before the slot and returns when
// it fires. The zero time means nothing was queued: the slot starts sooner
// than lead, or the same reminder is already queued.
func (s *ReminderScheduler) ScheduleReminder(b *models.Booking) (time.Time, error) {
	start, err := SlotStart(b)
	if err != nil {
		return time.Time{}, err
	}
	fireAt := start.Add(-s.lead)
	if !fireAt.After(s.now()) {
		return time.Time{}, nil
	}

	task, opts, err := NewReminderTask(ReminderPayload{BookingID: b.ID, SlotStart: start}, fireAt)
	if err != nil {
		return time.Time{}, err
	}
	if _, err := s.client.Enqueue(task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to enqueue reminder for booking %s: %w", b.ID, err)
	}
	return fireAt, nil
}
