package repository

import (
	"context"

	"karigar/models"
)

// NotificationRepository defines persistence for in-app notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID string, page models.PageRequest) ([]models.Notification, int64, error)
	// MarkRead flags the notification as read if it belongs to userID.
	MarkRead(ctx context.Context, id, userID string) error
}
