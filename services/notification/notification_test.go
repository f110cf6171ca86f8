package notification

import (
	"context"
	"errors"
	"sync"
	"testing"

	"karigar/database/repository/memory"
	"karigar/models"
	"karigar/services/tasks"
	"karigar/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	mu    sync.Mutex
	tasks []*asynq.Task
	err   error
}

func (q *fakeQueue) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

type fakePusher struct {
	sent []*messaging.Message
	err  error
}

func (p *fakePusher) Send(_ context.Context, m *messaging.Message) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.sent = append(p.sent, m)
	return "projects/karigar/messages/1", nil
}

func newService(t *testing.T, queue tasks.Enqueuer, pusher Pusher) (*DefaultNotificationService, *memory.UserRepo) {
	t.Helper()
	users := memory.NewUserRepo()
	require.NoError(t, users.Create(context.Background(), &models.User{ID: "cust-1", Name: "Asha", Role: models.RoleCustomer, FCMToken: "token-1"}))
	require.NoError(t, users.Create(context.Background(), &models.User{ID: "prov-1", Name: "Ravi", Role: models.RoleProvider}))

	svc, err := NewDefaultNotificationService(memory.NewNotificationRepo(), users, queue, pusher)
	require.NoError(t, err)
	return svc, users
}

func TestEmitStoresAndQueuesPush(t *testing.T) {
	queue := &fakeQueue{}
	svc, _ := newService(t, queue, nil)
	ctx := context.Background()

	require.NoError(t, svc.Emit(ctx, "cust-1", "Booking Confirmed", "Your booking is confirmed", models.NotificationBooking))

	items, page, err := svc.ListNotifications(ctx, "cust-1", models.PageRequest{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 20, page.Limit)
	assert.False(t, items[0].Read)
	assert.NotEmpty(t, items[0].ID)

	require.Len(t, queue.tasks, 1)
	assert.Equal(t, tasks.TypePushSend, queue.tasks[0].Type())
	payload, err := tasks.ParsePushPayload(queue.tasks[0])
	require.NoError(t, err)
	assert.Equal(t, items[0].ID, payload.NotificationID)
	assert.Equal(t, "Booking Confirmed", payload.Title)
}

func TestEmitSurvivesQueueFailure(t *testing.T) {
	svc, _ := newService(t, &fakeQueue{err: errors.New("redis down")}, nil)
	ctx := context.Background()

	require.NoError(t, svc.Emit(ctx, "prov-1", "New Review", "5 stars", models.NotificationReview))
	items, _, err := svc.ListNotifications(ctx, "prov-1", models.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	assert.Error(t, svc.Emit(ctx, "", "x", "y", models.NotificationBooking))
}

func TestMarkRead(t *testing.T) {
	svc, _ := newService(t, nil, nil)
	ctx := context.Background()
	require.NoError(t, svc.Emit(ctx, "cust-1", "Hello", "World", models.NotificationBooking))
	items, _, err := svc.ListNotifications(ctx, "cust-1", models.PageRequest{})
	require.NoError(t, err)

	err = svc.MarkRead(ctx, "prov-1", items[0].ID)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	require.NoError(t, svc.MarkRead(ctx, "cust-1", items[0].ID))
	items, _, err = svc.ListNotifications(ctx, "cust-1", models.PageRequest{})
	require.NoError(t, err)
	assert.True(t, items[0].Read)
}

func TestDeliverPush(t *testing.T) {
	pusher := &fakePusher{}
	svc, _ := newService(t, nil, pusher)
	ctx := context.Background()

	require.NoError(t, svc.DeliverPush(ctx, tasks.PushPayload{NotificationID: "n-1", UserID: "cust-1", Title: "Hi", Message: "There", Type: models.NotificationBooking}))
	require.Len(t, pusher.sent, 1)
	assert.Equal(t, "token-1", pusher.sent[0].Token)
	assert.Equal(t, "Hi", pusher.sent[0].Notification.Title)
	assert.Equal(t, "booking", pusher.sent[0].Data["type"])

	// No token and unknown users are skipped quietly.
	require.NoError(t, svc.DeliverPush(ctx, tasks.PushPayload{UserID: "prov-1"}))
	require.NoError(t, svc.DeliverPush(ctx, tasks.PushPayload{UserID: "ghost"}))
	assert.Len(t, pusher.sent, 1)

	pusher.err = errors.New("fcm unavailable")
	assert.Error(t, svc.DeliverPush(ctx, tasks.PushPayload{UserID: "cust-1"}))
}

func TestDeliverPushDisabled(t *testing.T) {
	svc, _ := newService(t, nil, nil)
	assert.NoError(t, svc.DeliverPush(context.Background(), tasks.PushPayload{UserID: "cust-1"}))
}
