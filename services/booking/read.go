package booking

import (
	"context"
	"errors"

	"karigar/database/repository"
	"karigar/models"
	"karigar/utils"

	"go.uber.org/zap"
)

// GetBooking returns a booking to one of its parties or an admin.
func (s *DefaultBookingService) GetBooking(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	if actor.ID == "" {
		return nil, utils.Unauthorized(msgNotAuthenticated)
	}
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound(msgBookingNotFound)
		}
		return nil, utils.Internal(err)
	}
	if !actor.IsAdmin() && !booking.HasParty(actor.ID) {
		return nil, utils.Forbidden(msgAccessDenied)
	}
	if err := s.hydrate(ctx, booking); err != nil {
		return nil, utils.Internal(err)
	}
	return booking, nil
}

// ListBookings pages through the actor's bookings. Customers see the
// bookings they made, providers the bookings made with them, admins all.
func (s *DefaultBookingService) ListBookings(
	ctx context.Context,
	actor models.Actor,
	filter models.BookingFilter,
) ([]models.Booking, models.Pagination, error) {
	switch actor.Role {
	case models.RoleCustomer:
		filter.CustomerID = actor.ID
		filter.ProviderID = ""
	case models.RoleProvider:
		filter.ProviderID = actor.ID
		filter.CustomerID = ""
	case models.RoleAdmin:
	default:
		return nil, models.Pagination{}, utils.Forbidden(msgAccessDenied)
	}
	if actor.ID == "" {
		return nil, models.Pagination{}, utils.Unauthorized(msgNotAuthenticated)
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, models.Pagination{}, utils.Validation(msgInvalidStatusList)
	}

	filter.Page = filter.Page.Normalize(models.DefaultPageLimit)
	bookings, total, err := s.Bookings.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, utils.Internal(err)
	}

	ptrs := make([]*models.Booking, len(bookings))
	for i := range bookings {
		ptrs[i] = &bookings[i]
	}
	if err := s.hydrate(ctx, ptrs...); err != nil {
		return nil, models.Pagination{}, utils.Internal(err)
	}
	return bookings, models.NewPagination(filter.Page, total), nil
}

// DeleteBooking hard-deletes a booking and its review. Admin only.
func (s *DefaultBookingService) DeleteBooking(ctx context.Context, actor models.Actor, bookingID string) error {
	if !actor.IsAdmin() {
		return utils.Forbidden(msgAdminsOnlyDelete)
	}
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NotFound(msgBookingNotFound)
		}
		return utils.Internal(err)
	}
	if err := s.Bookings.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NotFound(msgBookingNotFound)
		}
		return utils.Internal(err)
	}

	if booking.ReviewID != "" {
		if err := s.Reviews.Delete(ctx, booking.ReviewID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			utils.GetLogger().Warn("Failed to delete review of deleted booking",
				zap.String("bookingId", bookingID),
				zap.String("reviewId", booking.ReviewID),
				zap.Error(err),
			)
		}
	}
	utils.GetLogger().Info("Booking deleted", zap.String("bookingId", bookingID), zap.String("actorId", actor.ID))
	return nil
}
