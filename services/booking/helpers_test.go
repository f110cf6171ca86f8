package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"karigar/database/repository"
	"karigar/database/repository/memory"
	"karigar/models"
	"karigar/utils"

	"github.com/stretchr/testify/require"
)

type sentNotification struct {
	UserID  string
	Title   string
	Message string
	Kind    models.NotificationType
}

// recordingNotifier remembers every emit. When err is set it still records
// the attempt and then fails.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
	err  error
}

func (n *recordingNotifier) Emit(_ context.Context, userID, title, message string, kind models.NotificationType) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{UserID: userID, Title: title, Message: message, Kind: kind})
	return n.err
}

func (n *recordingNotifier) all() []sentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentNotification(nil), n.sent...)
}

func (n *recordingNotifier) last(t *testing.T) sentNotification {
	t.Helper()
	sent := n.all()
	require.NotEmpty(t, sent, "expected a notification")
	return sent[len(sent)-1]
}

func (n *recordingNotifier) reset() {
	n.mu.Lock()
	n.sent = nil
	n.mu.Unlock()
}

type recordingReminders struct {
	mu        sync.Mutex
	scheduled []string
}

func (r *recordingReminders) ScheduleReminder(b *models.Booking) (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheduled = append(r.scheduled, b.ID)
	return time.Now().Add(time.Hour), nil
}

type fixture struct {
	svc       *DefaultBookingService
	store     *repository.Store
	notifier  *recordingNotifier
	reminders *recordingReminders

	customer models.Actor
	other    models.Actor
	provider models.Actor
	admin    models.Actor
	stranger models.Actor
	service  *models.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	users := []*models.User{
		{ID: "cust-1", Name: "Asha", Role: models.RoleCustomer},
		{ID: "cust-2", Name: "Bilal", Role: models.RoleCustomer},
		{ID: "prov-1", Name: "Ravi Plumbing", Role: models.RoleProvider},
		{ID: "prov-2", Name: "Meena Electric", Role: models.RoleProvider},
		{ID: "admin-1", Name: "Ops", Role: models.RoleAdmin},
	}
	for _, u := range users {
		require.NoError(t, store.Users.Create(ctx, u))
	}

	service := &models.Service{
		ID:         "svc-1",
		ProviderID: "prov-1",
		Title:      "Pipe Repair",
		Category:   "PLUMBING",
		Price:      1500,
		PriceType:  models.PriceFixed,
		Location:   "Indiranagar",
		IsActive:   true,
	}
	require.NoError(t, store.Services.Create(ctx, service))

	notifier := &recordingNotifier{}
	reminders := &recordingReminders{}
	svc, err := NewDefaultBookingService(store, notifier, utils.NewLocalSlotLock(), reminders)
	require.NoError(t, err)

	return &fixture{
		svc:       svc,
		store:     store,
		notifier:  notifier,
		reminders: reminders,
		customer:  models.Actor{ID: "cust-1", Role: models.RoleCustomer, Name: "Asha"},
		other:     models.Actor{ID: "cust-2", Role: models.RoleCustomer, Name: "Bilal"},
		provider:  models.Actor{ID: "prov-1", Role: models.RoleProvider, Name: "Ravi Plumbing"},
		admin:     models.Actor{ID: "admin-1", Role: models.RoleAdmin, Name: "Ops"},
		stranger:  models.Actor{ID: "prov-2", Role: models.RoleProvider, Name: "Meena Electric"},
		service:   service,
	}
}

func (f *fixture) book(t *testing.T, actor models.Actor, date, timeOfDay string) *models.Booking {
	t.Helper()
	b, err := f.svc.CreateBooking(context.Background(), actor, CreateBookingInput{
		ServiceID:     f.service.ID,
		ScheduledDate: date,
		ScheduledTime: timeOfDay,
		Address:       "12 MG Road",
		Notes:         "Kitchen sink",
	})
	require.NoError(t, err)
	return b
}

func (f *fixture) setStatus(t *testing.T, actor models.Actor, bookingID string, status models.BookingStatus) *models.Booking {
	t.Helper()
	b, err := f.svc.UpdateBooking(context.Background(), bookingID, actor, UpdateBookingInput{
		Status: models.Some(string(status)),
	})
	require.NoError(t, err)
	return b
}

func (f *fixture) stored(t *testing.T, bookingID string) *models.Booking {
	t.Helper()
	b, err := f.store.Bookings.GetByID(context.Background(), bookingID)
	require.NoError(t, err)
	return b
}

func requireKind(t *testing.T, err error, kind utils.ErrorKind) *utils.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok, "expected an AppError, got %v", err)
	require.Equal(t, kind, appErr.Kind, appErr.Message)
	return appErr
}
