package review

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"karigar/database/repository"
	"karigar/models"
	"karigar/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateReviewInput is the body of a review. Rating is decoded as a number
// so fractional values can be rejected rather than truncated.
type CreateReviewInput struct {
	RequestID string   `json:"requestId"`
	Rating    *float64 `json:"rating"`
	Comment   string   `json:"comment"`
}

// validRating returns the rating when it is a whole number in [1,5].
func validRating(r float64) (int, bool) {
	if math.IsNaN(r) || r != math.Trunc(r) || r < 1 || r > 5 {
		return 0, false
	}
	return int(r), true
}

// CreateReview records the customer's review of a completed booking and
// links it to the booking. A booking takes exactly one review.
func (s *DefaultReviewService) CreateReview(
	ctx context.Context,
	actor models.Actor,
	input CreateReviewInput,
) (*models.Review, error) {
	if actor.ID == "" {
		return nil, utils.Unauthorized("Unauthorized")
	}
	if actor.Role != models.RoleCustomer {
		return nil, utils.Forbidden("Only customers can create reviews")
	}

	input.RequestID = strings.TrimSpace(input.RequestID)
	if input.RequestID == "" || input.Rating == nil {
		return nil, utils.Validation("Request ID and rating are required")
	}
	rating, ok := validRating(*input.Rating)
	if !ok {
		return nil, utils.Validation("Rating must be a whole number between 1 and 5")
	}

	booking, err := s.Bookings.GetByID(ctx, input.RequestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("Booking not found")
		}
		return nil, utils.Internal(err)
	}
	if booking.CustomerID != actor.ID {
		return nil, utils.Forbidden("You can only review your own bookings")
	}
	if booking.Status != models.StatusCompleted {
		return nil, utils.Validation("You can only review completed services")
	}
	if booking.ReviewID != "" {
		return nil, utils.Conflict(msgAlreadyReviewed)
	}

	review := &models.Review{
		ID:         uuid.New().String(),
		BookingID:  booking.ID,
		CustomerID: booking.CustomerID,
		ProviderID: booking.ProviderID,
		ServiceID:  booking.ServiceID,
		Rating:     rating,
		Comment:    strings.TrimSpace(input.Comment),
	}
	if err := s.Reviews.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.Conflict(msgAlreadyReviewed)
		}
		return nil, utils.Internal(err)
	}

	if err := s.Bookings.AttachReview(ctx, booking.ID, review.ID); err != nil {
		s.discard(ctx, review.ID)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.Conflict(msgAlreadyReviewed)
		}
		return nil, utils.Internal(err)
	}

	users, err := s.Users.GetByIDs(ctx, []string{review.CustomerID, review.ProviderID})
	if err != nil {
		utils.GetLogger().Warn("Failed to load review parties", zap.String("reviewId", review.ID), zap.Error(err))
		users = map[string]*models.User{}
	}
	review.Customer = users[review.CustomerID].Summary()
	review.Provider = users[review.ProviderID].Summary()

	name := actor.Name
	if review.Customer != nil && review.Customer.Name != "" {
		name = review.Customer.Name
	}
	if name == "" {
		name = "A customer"
	}
	s.notify(ctx, review, name)
	return review, nil
}

const msgAlreadyReviewed = "You have already reviewed this service"

// discard removes a review whose booking link failed.
func (s *DefaultReviewService) discard(ctx context.Context, reviewID string) {
	if err := s.Reviews.Delete(ctx, reviewID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		utils.GetLogger().Error("Failed to remove unlinked review", zap.String("reviewId", reviewID), zap.Error(err))
	}
}

func (s *DefaultReviewService) notify(ctx context.Context, review *models.Review, customerName string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	message := fmt.Sprintf("%s left a %d-star review for your service", customerName, review.Rating)
	if err := s.Notifier.Emit(ctx, review.ProviderID, "New Review", message, models.NotificationReview); err != nil {
		utils.GetLogger().Error("Failed to emit review notification",
			zap.String("reviewId", review.ID),
			zap.String("providerId", review.ProviderID),
			zap.Error(err),
		)
	}
}
