package repository

import (
	"context"

	"karigar/models"
)

// ReviewRepository defines persistence for reviews.
type ReviewRepository interface {
	GetByID(ctx context.Context, id string) (*models.Review, error)
	// GetByBookingID returns ErrNotFound when the booking has no review.
	GetByBookingID(ctx context.Context, bookingID string) (*models.Review, error)
	// Create yields ErrDuplicate when the booking already has a review.
	Create(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter models.ReviewFilter) ([]models.Review, int64, error)
	Summary(ctx context.Context) (models.RatingSummary, error)
	// SummaryByProvider aggregates the ratings each provider received.
	// Providers without reviews are absent from the map.
	SummaryByProvider(ctx context.Context, providerIDs []string) (map[string]models.RatingSummary, error)
}
