package tasks

import (
	"encoding/json"
	"fmt"

	"karigar/models"

	"github.com/hibiken/asynq"
)

const TypePushSend = "notification:push"

// PushPayload carries a stored notification to the push worker.
type PushPayload struct {
	NotificationID string                  `json:"notificationId"`
	UserID         string                  `json:"userId"`
	Title          string                  `json:"title"`
	Message        string                  `json:"message"`
	Type           models.NotificationType `json:"type"`
}

// NewPushTask builds the push delivery task of a stored notification.
func NewPushTask(n models.Notification) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(PushPayload{
		NotificationID: n.ID,
		UserID:         n.UserID,
		Title:          n.Title,
		Message:        n.Message,
		Type:           n.Type,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode push payload: %w", err)
	}
	task := asynq.NewTask(TypePushSend, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.TaskID("push:" + n.ID)}
	return task, opts, nil
}

// ParsePushPayload decodes a push task.
func ParsePushPayload(task *asynq.Task) (PushPayload, error) {
	var p PushPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid push payload: %w", err)
	}
	return p, nil
}
