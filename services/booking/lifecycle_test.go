package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"karigar/database/repository"
	"karigar/models"
	"karigar/services/review"
	"karigar/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingHappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.book(t, f.customer, "2024-06-01", "10:00")
	assert.Equal(t, models.StatusRequested, b.Status)
	assert.Equal(t, 1500.0, b.TotalPrice)
	n := f.notifier.last(t)
	assert.Equal(t, "prov-1", n.UserID)
	assert.Equal(t, "New Booking Request", n.Title)
	assert.Equal(t, "Asha has requested your service: Pipe Repair", n.Message)

	steps := []struct {
		status  models.BookingStatus
		title   string
		message string
	}{
		{models.StatusConfirmed, "Booking Confirmed", "Your booking for Pipe Repair has been confirmed by Ravi Plumbing"},
		{models.StatusInProgress, "Service Started", "Ravi Plumbing has started working on your service: Pipe Repair"},
		{models.StatusCompleted, "Service Completed", "Your service Pipe Repair has been completed. Please leave a review!"},
	}
	for _, step := range steps {
		updated := f.setStatus(t, f.provider, b.ID, step.status)
		assert.Equal(t, step.status, updated.Status)
		require.NotNil(t, updated.Customer)
		require.NotNil(t, updated.Provider)
		require.NotNil(t, updated.Service)

		n := f.notifier.last(t)
		assert.Equal(t, "cust-1", n.UserID)
		assert.Equal(t, step.title, n.Title)
		assert.Equal(t, step.message, n.Message)
		assert.Equal(t, models.NotificationBooking, n.Kind)
	}
	assert.Len(t, f.notifier.all(), 4)
	assert.Equal(t, []string{b.ID}, f.reminders.scheduled)

	reviews, err := review.NewDefaultReviewService(f.store, f.notifier)
	require.NoError(t, err)
	rating := 5.0
	r, err := reviews.CreateReview(ctx, f.customer, review.CreateReviewInput{RequestID: b.ID, Rating: &rating, Comment: "Quick fix"})
	require.NoError(t, err)
	n = f.notifier.last(t)
	assert.Equal(t, "prov-1", n.UserID)
	assert.Equal(t, "New Review", n.Title)
	assert.Equal(t, models.NotificationReview, n.Kind)

	got, err := f.svc.GetBooking(ctx, f.customer, b.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ReviewID)
	require.NotNil(t, got.Review)
	assert.Equal(t, 5, got.Review.Rating)
	assert.Equal(t, 1500.0, got.TotalPrice)

	_, err = reviews.CreateReview(ctx, f.customer, review.CreateReviewInput{RequestID: b.ID, Rating: &rating})
	requireKind(t, err, utils.KindConflict)

	history := f.stored(t, b.ID).StatusHistory
	require.Len(t, history, 4)
	assert.Equal(t, models.StatusCompleted, history[3].To)
	assert.Equal(t, "prov-1", history[3].ActorID)
}

func TestCustomerCancelNotifiesProvider(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, f.customer, "2024-06-01", "10:00")
	f.notifier.reset()

	cancelled := f.setStatus(t, f.customer, b.ID, models.StatusCancelled)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	n := f.notifier.last(t)
	assert.Equal(t, "prov-1", n.UserID)
	assert.Equal(t, "Booking Cancelled", n.Title)
	assert.Equal(t, "The booking for Pipe Repair has been cancelled", n.Message)
	assert.Len(t, f.notifier.all(), 1)

	for _, status := range []models.BookingStatus{models.StatusConfirmed, models.StatusInProgress, models.StatusCompleted, models.StatusRequested} {
		_, err := f.svc.UpdateBooking(ctx, b.ID, f.provider, UpdateBookingInput{Status: models.Some(string(status))})
		requireKind(t, err, utils.KindInvalidTransition)
	}
	_, err := f.svc.UpdateBooking(ctx, b.ID, f.customer, UpdateBookingInput{Status: models.Some(string(models.StatusCancelled))})
	requireKind(t, err, utils.KindInvalidTransition)

	assert.Equal(t, models.StatusCancelled, f.stored(t, b.ID).Status)
	assert.Len(t, f.notifier.all(), 1)
}

func TestProviderCancelNotifiesCustomer(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, f.customer, "2024-06-01", "10:00")
	f.setStatus(t, f.provider, b.ID, models.StatusConfirmed)

	f.setStatus(t, f.provider, b.ID, models.StatusCancelled)
	n := f.notifier.last(t)
	assert.Equal(t, "cust-1", n.UserID)
	assert.Equal(t, "Booking Cancelled", n.Title)
}

func TestUpdateBookingRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, f.customer, "2024-06-01", "10:00")

	tests := []struct {
		name    string
		actor   models.Actor
		changes UpdateBookingInput
		kind    utils.ErrorKind
	}{
		{"stranger", f.stranger, UpdateBookingInput{Status: models.Some("CONFIRMED")}, utils.KindForbidden},
		{"stranger notes only", f.stranger, UpdateBookingInput{Notes: models.Some("hi")}, utils.KindForbidden},
		{"customer confirms", f.customer, UpdateBookingInput{Status: models.Some("CONFIRMED")}, utils.KindInvalidTransition},
		{"provider skips ahead", f.provider, UpdateBookingInput{Status: models.Some("COMPLETED"), Notes: models.Some("done")}, utils.KindInvalidTransition},
		{"provider unknown status", f.provider, UpdateBookingInput{Status: models.Some("ARCHIVED")}, utils.KindInvalidTransition},
		{"admin unknown status", f.admin, UpdateBookingInput{Status: models.Some("ARCHIVED")}, utils.KindValidation},
		{"empty status", f.provider, UpdateBookingInput{Status: models.Some("  ")}, utils.KindValidation},
		{"bad scheduledAt", f.provider, UpdateBookingInput{ScheduledAt: models.Some("next tuesday")}, utils.KindValidation},
		{"unknown role", models.Actor{ID: "cust-1", Role: "GUEST"}, UpdateBookingInput{Status: models.Some("CANCELLED")}, utils.KindForbidden},
		{"anonymous", models.Actor{}, UpdateBookingInput{Status: models.Some("CANCELLED")}, utils.KindUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.notifier.reset()
			_, err := f.svc.UpdateBooking(ctx, b.ID, tt.actor, tt.changes)
			requireKind(t, err, tt.kind)

			stored := f.stored(t, b.ID)
			assert.Equal(t, models.StatusRequested, stored.Status)
			assert.Equal(t, "Kitchen sink", stored.Notes)
			assert.Equal(t, int64(1), stored.Version)
			assert.Empty(t, f.notifier.all())
		})
	}

	_, err := f.svc.UpdateBooking(ctx, "missing", f.admin, UpdateBookingInput{Status: models.Some("CONFIRMED")})
	requireKind(t, err, utils.KindNotFound)
}

func TestUpdateBookingOptionalFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, f.customer, "2024-06-01", "10:00")
	f.notifier.reset()

	updated, err := f.svc.UpdateBooking(ctx, b.ID, f.customer, UpdateBookingInput{
		ScheduledAt: models.Some("2024-06-01T10:00:00+05:30"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ScheduledAt)
	assert.True(t, updated.ScheduledAt.Equal(time.Date(2024, 6, 1, 4, 30, 0, 0, time.UTC)))
	assert.Equal(t, "Kitchen sink", updated.Notes, "omitted notes are kept")
	assert.Empty(t, f.notifier.all(), "no status change, no notification")

	updated, err = f.svc.UpdateBooking(ctx, b.ID, f.customer, UpdateBookingInput{
		Notes: models.Some(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "", updated.Notes)
	assert.NotNil(t, updated.ScheduledAt, "omitted scheduledAt is kept")

	updated, err = f.svc.UpdateBooking(ctx, b.ID, f.customer, UpdateBookingInput{
		ScheduledAt: models.Optional[string]{Set: true, Null: true},
	})
	require.NoError(t, err)
	assert.Nil(t, updated.ScheduledAt)

	stored := f.stored(t, b.ID)
	assert.Equal(t, "", stored.Notes)
	assert.Nil(t, stored.ScheduledAt)
	assert.Equal(t, models.StatusRequested, stored.Status)
	assert.Equal(t, int64(4), stored.Version)
}

func TestAdminOverrideIsAudited(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, f.customer, "2024-06-01", "10:00")
	f.notifier.reset()

	updated := f.setStatus(t, f.admin, b.ID, models.StatusCompleted)
	assert.Equal(t, models.StatusCompleted, updated.Status)

	history := f.stored(t, b.ID).StatusHistory
	last := history[len(history)-1]
	assert.True(t, last.Override)
	assert.Equal(t, models.RoleAdmin, last.ActorRole)
	assert.Equal(t, "Service Completed", f.notifier.last(t).Title)

	// Moving back out of a terminal state is also allowed for admins.
	f.notifier.reset()
	updated = f.setStatus(t, f.admin, b.ID, models.StatusRequested)
	assert.Equal(t, models.StatusRequested, updated.Status)
	assert.Empty(t, f.notifier.all())

	f.setStatus(t, f.admin, b.ID, models.StatusConfirmed)
	history = f.stored(t, b.ID).StatusHistory
	assert.False(t, history[len(history)-1].Override)
	assert.Equal(t, "cust-1", f.notifier.last(t).UserID)
}

func TestNotificationFailureKeepsUpdate(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, f.customer, "2024-06-01", "10:00")
	f.notifier.err = errors.New("notification store down")

	updated, err := f.svc.UpdateBooking(context.Background(), b.ID, f.provider, UpdateBookingInput{
		Status: models.Some(string(models.StatusConfirmed)),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, updated.Status)
	assert.Equal(t, models.StatusConfirmed, f.stored(t, b.ID).Status)
}

// racingBookings lets another writer update the booking between the
// service's read and its write.
type racingBookings struct {
	repository.BookingRepository
	once sync.Once
	race func()
}

func (r *racingBookings) Update(ctx context.Context, b *models.Booking, expectedVersion int64) error {
	r.once.Do(r.race)
	return r.BookingRepository.Update(ctx, b, expectedVersion)
}

func TestConcurrentUpdateConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, f.customer, "2024-06-01", "10:00")

	inner := f.store.Bookings
	f.svc.Bookings = &racingBookings{
		BookingRepository: inner,
		race: func() {
			current, err := inner.GetByID(ctx, b.ID)
			require.NoError(t, err)
			current.Status = models.StatusConfirmed
			require.NoError(t, inner.Update(ctx, current, current.Version))
		},
	}
	f.notifier.reset()

	_, err := f.svc.UpdateBooking(ctx, b.ID, f.customer, UpdateBookingInput{
		Status: models.Some(string(models.StatusCancelled)),
	})
	appErr := requireKind(t, err, utils.KindConflict)
	assert.Equal(t, msgConcurrentUpdate, appErr.Message)
	assert.Equal(t, models.StatusConfirmed, f.stored(t, b.ID).Status)
	assert.Empty(t, f.notifier.all())
}

func TestSendReminderOnlyForConfirmed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, f.customer, "2024-06-01", "10:00")
	f.notifier.reset()

	require.NoError(t, f.svc.SendReminder(ctx, b.ID, time.Time{}))
	assert.Empty(t, f.notifier.all())

	f.setStatus(t, f.provider, b.ID, models.StatusConfirmed)
	f.notifier.reset()
	require.NoError(t, f.svc.SendReminder(ctx, b.ID, time.Time{}))
	n := f.notifier.last(t)
	assert.Equal(t, "cust-1", n.UserID)
	assert.Equal(t, "Upcoming Booking", n.Title)
	assert.Contains(t, n.Message, "2024-06-01 at 10:00")

	require.NoError(t, f.svc.SendReminder(ctx, "gone", time.Time{}))
}

func TestConfirmedRescheduleQueuesReminder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, f.customer, "2024-06-01", "10:00")

	_, err := f.svc.UpdateBooking(ctx, b.ID, f.customer, UpdateBookingInput{
		ScheduledAt: models.Some("2024-06-01T11:00:00Z"),
	})
	require.NoError(t, err)
	assert.Empty(t, f.reminders.scheduled, "requested bookings are not reminded")

	f.setStatus(t, f.provider, b.ID, models.StatusConfirmed)
	assert.Equal(t, []string{b.ID}, f.reminders.scheduled)

	_, err = f.svc.UpdateBooking(ctx, b.ID, f.provider, UpdateBookingInput{
		ScheduledAt: models.Some("2024-06-02T09:00:00Z"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID, b.ID}, f.reminders.scheduled)

	_, err = f.svc.UpdateBooking(ctx, b.ID, f.provider, UpdateBookingInput{
		ScheduledAt: models.Some("2024-06-02T14:30:00+05:30"),
		Notes:       models.Some("Bring a ladder"),
	})
	require.NoError(t, err)
	assert.Len(t, f.reminders.scheduled, 2, "same instant in another zone")

	_, err = f.svc.UpdateBooking(ctx, b.ID, f.customer, UpdateBookingInput{
		ScheduledAt: models.Optional[string]{Set: true, Null: true},
	})
	require.NoError(t, err)
	assert.Len(t, f.reminders.scheduled, 3, "clearing falls back to the booked slot")
}

func TestSendReminderSkipsMovedSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, f.customer, "2024-06-01", "10:00")
	f.setStatus(t, f.provider, b.ID, models.StatusConfirmed)
	booked := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	f.notifier.reset()
	require.NoError(t, f.svc.SendReminder(ctx, b.ID, booked))
	assert.Len(t, f.notifier.all(), 1)

	_, err := f.svc.UpdateBooking(ctx, b.ID, f.provider, UpdateBookingInput{
		ScheduledAt: models.Some("2024-06-02T09:00:00Z"),
	})
	require.NoError(t, err)

	f.notifier.reset()
	require.NoError(t, f.svc.SendReminder(ctx, b.ID, booked))
	assert.Empty(t, f.notifier.all(), "reminder planned for the old slot is dropped")

	require.NoError(t, f.svc.SendReminder(ctx, b.ID, time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)))
	assert.Len(t, f.notifier.all(), 1)
}
