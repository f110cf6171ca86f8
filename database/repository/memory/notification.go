package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"karigar/database/repository"
	"karigar/models"
)

// NotificationRepo is an in-memory repository.NotificationRepository.
type NotificationRepo struct {
	mu            sync.Mutex
	notifications []models.Notification
}

// NewNotificationRepo returns an empty notification store.
func NewNotificationRepo() *NotificationRepo {
	return &NotificationRepo{}
}

func (r *NotificationRepo) Create(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *NotificationRepo) ListByUser(_ context.Context, userID string, p models.PageRequest) ([]models.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			matched = append(matched, n)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return page(matched, p), int64(len(matched)), nil
}

func (r *NotificationRepo) MarkRead(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notifications {
		if r.notifications[i].ID == id && r.notifications[i].UserID == userID {
			r.notifications[i].Read = true
			return nil
		}
	}
	return repository.ErrNotFound
}

// All returns every stored notification in insertion order.
func (r *NotificationRepo) All() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Notification(nil), r.notifications...)
}
