package repository

import "errors"

var (
	// ErrNotFound is returned when no document matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate record")
	// ErrVersionConflict is returned when a compare-and-set update finds the
	// record at a different version than the caller read.
	ErrVersionConflict = errors.New("record was modified concurrently")
)

// Store bundles the repositories the services depend on.
type Store struct {
	Bookings      BookingRepository
	Services      ServiceRepository
	Reviews       ReviewRepository
	Notifications NotificationRepository
	Users         UserRepository
	Reports       ReportRepository
}
