package notification

import (
	"context"
	"fmt"
	"time"

	"karigar/models"
	"karigar/services/tasks"
	"karigar/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Emit stores the notification and queues a push for it. Only a failed
// write is reported; push queueing problems are logged.
func (s *DefaultNotificationService) Emit(
	ctx context.Context,
	userID, title, message string,
	kind models.NotificationType,
) error {
	if userID == "" {
		return fmt.Errorf("notification recipient is empty")
	}

	n := models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      kind,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, &n); err != nil {
		return fmt.Errorf("failed to store notification for user %s: %w", userID, err)
	}

	if s.queue == nil {
		return nil
	}
	task, opts, err := tasks.NewPushTask(n)
	if err == nil {
		_, err = s.queue.Enqueue(task, opts...)
	}
	if err != nil {
		utils.GetLogger().Warn("Failed to queue push notification",
			zap.String("notificationId", n.ID),
			zap.String("userId", userID),
			zap.Error(err),
		)
	}
	return nil
}

// ListNotifications returns the recipient's inbox, newest first.
func (s *DefaultNotificationService) ListNotifications(
	ctx context.Context,
	userID string,
	page models.PageRequest,
) ([]models.Notification, models.Pagination, error) {
	page = page.Normalize(20)
	items, total, err := s.repo.ListByUser(ctx, userID, page)
	if err != nil {
		return nil, models.Pagination{}, utils.Internal(err)
	}
	return items, models.NewPagination(page, total), nil
}

// MarkRead flags one of the user's notifications as read.
func (s *DefaultNotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	if err := s.repo.MarkRead(ctx, notificationID, userID); err != nil {
		if isNotFound(err) {
			return utils.NotFound("Notification not found")
		}
		return utils.Internal(err)
	}
	return nil
}
