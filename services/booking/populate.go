package booking

import (
	"context"
	"errors"
	"fmt"

	"karigar/database/repository"
	"karigar/models"
)

// hydrate fills the customer, provider, service and review of each booking.
// A missing related record leaves its field nil.
func (s *DefaultBookingService) hydrate(ctx context.Context, bookings ...*models.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var userIDs []string
	for _, b := range bookings {
		for _, id := range []string{b.CustomerID, b.ProviderID} {
			if id != "" && !seen[id] {
				seen[id] = true
				userIDs = append(userIDs, id)
			}
		}
	}
	users, err := s.Users.GetByIDs(ctx, userIDs)
	if err != nil {
		return fmt.Errorf("failed to load booking parties: %w", err)
	}

	services := make(map[string]*models.Service)
	for _, b := range bookings {
		if _, ok := services[b.ServiceID]; ok {
			continue
		}
		svc, err := s.Services.GetByID(ctx, b.ServiceID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("failed to load service %s: %w", b.ServiceID, err)
		}
		services[b.ServiceID] = svc
	}

	for _, b := range bookings {
		b.Customer = users[b.CustomerID].Summary()
		b.Provider = users[b.ProviderID].Summary()
		b.Service = services[b.ServiceID]
		b.Review = nil
		if b.ReviewID == "" {
			continue
		}
		review, err := s.Reviews.GetByID(ctx, b.ReviewID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("failed to load review %s: %w", b.ReviewID, err)
		}
		b.Review = review
	}
	return nil
}
