package repository

import (
	"context"

	"karigar/models"
)

// BookingRepository defines persistence for bookings.
type BookingRepository interface {
	// GetByID returns ErrNotFound when no booking has the id.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// FindActiveInSlot returns the active booking holding the provider's slot,
	// or ErrNotFound when the slot is free.
	FindActiveInSlot(ctx context.Context, providerID, date, timeOfDay string) (*models.Booking, error)
	// Create inserts a booking. A second active booking in the same slot
	// yields ErrDuplicate.
	Create(ctx context.Context, booking *models.Booking) error
	// Update writes the booking only if the stored version equals
	// expectedVersion, then bumps the version. A mismatch yields
	// ErrVersionConflict; moving into an occupied slot yields ErrDuplicate.
	Update(ctx context.Context, booking *models.Booking, expectedVersion int64) error
	// AttachReview sets reviewId when it is still unset. ErrDuplicate when
	// the booking already carries a review.
	AttachReview(ctx context.Context, bookingID, reviewID string) error
	// DetachReview clears reviewId if it currently equals reviewID.
	DetachReview(ctx context.Context, bookingID, reviewID string) error
	List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, int64, error)
	CountByStatus(ctx context.Context) (map[models.BookingStatus]int64, error)
	Delete(ctx context.Context, id string) error
}
