// Package memory holds map-backed repositories used by tests and by the
// STORE_DRIVER=memory mode. They honour the same uniqueness and version
// rules as the MongoDB implementations.
package memory

import (
	"karigar/database/repository"
	"karigar/models"
)

// NewStore builds a Store whose repositories live in process memory.
func NewStore() *repository.Store {
	return &repository.Store{
		Bookings:      NewBookingRepo(),
		Services:      NewServiceRepo(),
		Reviews:       NewReviewRepo(),
		Notifications: NewNotificationRepo(),
		Users:         NewUserRepo(),
		Reports:       NewReportRepo(),
	}
}

func page[T any](items []T, p models.PageRequest) []T {
	start := p.Skip()
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := len(items)
	if p.Limit > 0 && p.Limit < end-start {
		end = start + p.Limit
	}
	return items[start:end]
}
