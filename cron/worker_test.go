package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"karigar/database/repository/memory"
	"karigar/models"
	"karigar/services/booking"
	"karigar/services/notification"
	"karigar/services/tasks"
	"karigar/utils"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeMuxRoutesTasks(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Users.Create(ctx, &models.User{ID: "cust-1", Name: "Asha", Role: models.RoleCustomer}))
	require.NoError(t, store.Bookings.Create(ctx, &models.Booking{
		ID: "b-1", Status: models.StatusConfirmed, CustomerID: "cust-1", ProviderID: "prov-1", ServiceID: "svc-1",
		ScheduledDate: "2024-06-01", ScheduledTime: "10:00", Address: "12 MG Road",
	}))

	notifications, err := notification.NewDefaultNotificationService(store.Notifications, store.Users, nil, nil)
	require.NoError(t, err)
	bookings, err := booking.NewDefaultBookingService(store, notifications, utils.NewLocalSlotLock(), nil)
	require.NoError(t, err)
	mux := NewServeMux(notifications, bookings)

	payload, err := json.Marshal(tasks.ReminderPayload{BookingID: "b-1"})
	require.NoError(t, err)
	require.NoError(t, mux.ProcessTask(ctx, asynq.NewTask(tasks.TypeBookingReminder, payload)))

	inbox := store.Notifications.(*memory.NotificationRepo).All()
	require.Len(t, inbox, 1)
	assert.Equal(t, "Upcoming Booking", inbox[0].Title)

	stale, err := json.Marshal(tasks.ReminderPayload{BookingID: "b-1", SlotStart: time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	require.NoError(t, mux.ProcessTask(ctx, asynq.NewTask(tasks.TypeBookingReminder, stale)))
	assert.Len(t, store.Notifications.(*memory.NotificationRepo).All(), 1, "reminder for another slot is dropped")

	push, _, err := tasks.NewPushTask(inbox[0])
	require.NoError(t, err)
	require.NoError(t, mux.ProcessTask(ctx, push), "push is skipped when delivery is disabled")

	err = mux.ProcessTask(ctx, asynq.NewTask(tasks.TypeBookingReminder, []byte("not json")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))
	err = mux.ProcessTask(ctx, asynq.NewTask(tasks.TypePushSend, []byte("[")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}
