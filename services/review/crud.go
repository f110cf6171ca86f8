package review

import (
	"context"
	"errors"

	"karigar/database/repository"
	"karigar/models"
	"karigar/utils"

	"go.uber.org/zap"
)

// ListReviews pages through reviews, optionally for one provider or customer.
func (s *DefaultReviewService) ListReviews(ctx context.Context, filter models.ReviewFilter) ([]models.Review, models.Pagination, error) {
	filter.Page = filter.Page.Normalize(models.DefaultPageLimit)
	reviews, total, err := s.Reviews.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, utils.Internal(err)
	}

	var ids []string
	for _, r := range reviews {
		ids = append(ids, r.CustomerID, r.ProviderID)
	}
	users, err := s.Users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, models.Pagination{}, utils.Internal(err)
	}
	for i := range reviews {
		reviews[i].Customer = users[reviews[i].CustomerID].Summary()
		reviews[i].Provider = users[reviews[i].ProviderID].Summary()
	}
	return reviews, models.NewPagination(filter.Page, total), nil
}

// DeleteReview removes a review and unlinks it from its booking. Only the
// author or an admin may delete it.
func (s *DefaultReviewService) DeleteReview(ctx context.Context, actor models.Actor, reviewID string) error {
	if actor.ID == "" {
		return utils.Unauthorized("Unauthorized")
	}
	review, err := s.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NotFound("Review not found")
		}
		return utils.Internal(err)
	}
	if !actor.IsAdmin() && review.CustomerID != actor.ID {
		return utils.Forbidden("Access denied")
	}

	if err := s.Reviews.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NotFound("Review not found")
		}
		return utils.Internal(err)
	}
	if err := s.Bookings.DetachReview(ctx, review.BookingID, review.ID); err != nil {
		utils.GetLogger().Warn("Failed to unlink deleted review",
			zap.String("reviewId", reviewID),
			zap.String("bookingId", review.BookingID),
			zap.Error(err),
		)
	}
	return nil
}
