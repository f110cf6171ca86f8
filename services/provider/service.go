package provider

import (
	"context"
	"errors"

	"karigar/database/repository"
	"karigar/models"
	"karigar/utils"

	"golang.org/x/sync/errgroup"
)

const (
	directoryPageLimit = 12
	profileReviewLimit = 20
	msgProviderMissing = "Provider not found"
)

// ListProviders pages through active providers with their active services
// and rating.
func (s *DefaultProviderService) ListProviders(
	ctx context.Context,
	filter models.ProviderFilter,
) ([]models.ProviderProfile, models.Pagination, error) {
	page := filter.Page.Normalize(directoryPageLimit)
	users, total, err := s.Users.List(ctx, models.UserFilter{
		Role:       models.RoleProvider,
		OnlyActive: true,
		City:       filter.City,
		Search:     filter.Search,
		Page:       page,
	})
	if err != nil {
		return nil, models.Pagination{}, utils.Internal(err)
	}

	ids := make([]string, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}

	var (
		services []models.Service
		ratings  map[string]models.RatingSummary
	)
	if len(ids) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			services, err = s.Services.ListActiveByProviders(gctx, ids)
			return err
		})
		g.Go(func() (err error) {
			ratings, err = s.Reviews.SummaryByProvider(gctx, ids)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, models.Pagination{}, utils.Internal(err)
		}
	}

	byProvider := make(map[string][]models.Service, len(ids))
	for _, svc := range services {
		byProvider[svc.ProviderID] = append(byProvider[svc.ProviderID], svc)
	}
	profiles := make([]models.ProviderProfile, 0, len(users))
	for i := range users {
		u := &users[i]
		profiles = append(profiles, models.NewProviderProfile(u, byProvider[u.ID], ratings[u.ID]))
	}
	return profiles, models.NewPagination(page, total), nil
}

// GetProvider returns one active provider with the latest reviews.
func (s *DefaultProviderService) GetProvider(ctx context.Context, providerID string) (*models.ProviderProfile, error) {
	user, err := s.Users.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound(msgProviderMissing)
		}
		return nil, utils.Internal(err)
	}
	if user.Role != models.RoleProvider || !user.IsActive {
		return nil, utils.NotFound(msgProviderMissing)
	}

	var (
		services []models.Service
		ratings  map[string]models.RatingSummary
		reviews  []models.Review
	)
	ids := []string{user.ID}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		services, err = s.Services.ListActiveByProviders(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		ratings, err = s.Reviews.SummaryByProvider(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		reviews, _, err = s.Reviews.List(gctx, models.ReviewFilter{
			ProviderID: user.ID,
			Page:       models.PageRequest{Page: 1, Limit: profileReviewLimit},
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, utils.Internal(err)
	}

	customerIDs := make([]string, len(reviews))
	for i := range reviews {
		customerIDs[i] = reviews[i].CustomerID
	}
	if len(customerIDs) > 0 {
		customers, err := s.Users.GetByIDs(ctx, customerIDs)
		if err != nil {
			return nil, utils.Internal(err)
		}
		for i := range reviews {
			reviews[i].Customer = customers[reviews[i].CustomerID].Summary()
		}
	}

	profile := models.NewProviderProfile(user, services, ratings[user.ID])
	profile.Reviews = reviews
	return &profile, nil
}
