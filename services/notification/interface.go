package notification

import (
	"context"
	"fmt"

	"karigar/database/repository"
	"karigar/models"
	"karigar/services/tasks"

	"firebase.google.com/go/v4/messaging"
)

// Emitter records a notification for one recipient.
type Emitter interface {
	Emit(ctx context.Context, userID, title, message string, kind models.NotificationType) error
}

// NotificationService is the full notification surface: emitting, the
// recipient's inbox, and push delivery run by the worker.
type NotificationService interface {
	Emitter
	ListNotifications(ctx context.Context, userID string, page models.PageRequest) ([]models.Notification, models.Pagination, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	DeliverPush(ctx context.Context, payload tasks.PushPayload) error
}

// Pusher sends a push message. *messaging.Client satisfies it.
type Pusher interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	repo   repository.NotificationRepository
	users  repository.UserRepository
	queue  tasks.Enqueuer
	pusher Pusher
}

// NewDefaultNotificationService wires the service. queue and pusher may be
// nil, in which case notifications are only stored.
func NewDefaultNotificationService(
	repo repository.NotificationRepository,
	users repository.UserRepository,
	queue tasks.Enqueuer,
	pusher Pusher,
) (*DefaultNotificationService, error) {
	if repo == nil || users == nil {
		return nil, fmt.Errorf("notification service initialization error: repository is nil")
	}
	return &DefaultNotificationService{
		repo:   repo,
		users:  users,
		queue:  queue,
		pusher: pusher,
	}, nil
}
