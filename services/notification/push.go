package notification

import (
	"context"
	"errors"
	"fmt"

	"karigar/database/repository"
	"karigar/services/tasks"
	"karigar/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

// DeliverPush sends a stored notification to the recipient's device.
// Recipients without a registered token are skipped.
func (s *DefaultNotificationService) DeliverPush(ctx context.Context, p tasks.PushPayload) error {
	logger := utils.GetLogger().With(
		zap.String("notificationId", p.NotificationID),
		zap.String("userId", p.UserID),
	)

	if s.pusher == nil {
		logger.Debug("Push delivery disabled, skipping")
		return nil
	}

	user, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		if isNotFound(err) {
			logger.Warn("Push recipient no longer exists")
			return nil
		}
		return fmt.Errorf("DeliverPush: could not load user %s: %w", p.UserID, err)
	}
	if user.FCMToken == "" {
		logger.Debug("Recipient has no FCM token, skipping push")
		return nil
	}

	msg := &messaging.Message{
		Token: user.FCMToken,
		Notification: &messaging.Notification{
			Title: p.Title,
			Body:  p.Message,
		},
		Data: map[string]string{
			"notificationId": p.NotificationID,
			"type":           string(p.Type),
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	response, err := s.pusher.Send(ctx, msg)
	if err != nil {
		if messaging.IsUnregistered(err) {
			logger.Info("FCM token unregistered, clearing it")
			if clearErr := s.users.UpdateFCMToken(ctx, p.UserID, ""); clearErr != nil {
				logger.Warn("Failed to clear stale FCM token", zap.Error(clearErr))
			}
			return nil
		}
		return fmt.Errorf("DeliverPush: failed to send FCM message: %w", err)
	}

	logger.Debug("Push sent", zap.String("messageId", response))
	return nil
}
