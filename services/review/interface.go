package review

import (
	"context"
	"fmt"

	"karigar/database/repository"
	"karigar/models"
	"karigar/services/notification"
)

// ReviewService attaches customer reviews to completed bookings.
type ReviewService interface {
	CreateReview(ctx context.Context, actor models.Actor, input CreateReviewInput) (*models.Review, error)
	ListReviews(ctx context.Context, filter models.ReviewFilter) ([]models.Review, models.Pagination, error)
	DeleteReview(ctx context.Context, actor models.Actor, reviewID string) error
}

// DefaultReviewService implements ReviewService.
type DefaultReviewService struct {
	Reviews  repository.ReviewRepository
	Bookings repository.BookingRepository
	Users    repository.UserRepository
	Notifier notification.Emitter
}

// NewDefaultReviewService wires the review service.
func NewDefaultReviewService(store *repository.Store, notifier notification.Emitter) (*DefaultReviewService, error) {
	if store == nil || store.Reviews == nil || store.Bookings == nil || store.Users == nil || notifier == nil {
		return nil, fmt.Errorf("review service initialization error: dependency is nil")
	}
	return &DefaultReviewService{
		Reviews:  store.Reviews,
		Bookings: store.Bookings,
		Users:    store.Users,
		Notifier: notifier,
	}, nil
}
