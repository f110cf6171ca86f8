package admin

import (
	"context"
	"fmt"

	"karigar/database/repository"
	"karigar/models"
	"karigar/utils"

	"golang.org/x/sync/errgroup"
)

// AdminService covers the marketplace overview and account management.
type AdminService interface {
	GetStats(ctx context.Context, actor models.Actor) (*models.AdminStats, error)
	ListUsers(ctx context.Context, actor models.Actor, filter models.UserFilter) ([]models.User, models.Pagination, error)
	UpdateUser(ctx context.Context, actor models.Actor, userID string, input UpdateUserInput) (*models.User, error)
	DeleteUser(ctx context.Context, actor models.Actor, userID string) error
}

const msgAccessDenied = "Access denied"

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	store *repository.Store
}

// NewDefaultAdminService wires the admin service.
func NewDefaultAdminService(store *repository.Store) (*DefaultAdminService, error) {
	if store == nil {
		return nil, fmt.Errorf("admin service initialization error: store is nil")
	}
	return &DefaultAdminService{store: store}, nil
}

// GetStats gathers the marketplace overview. The counts are read
// concurrently and are not a consistent snapshot.
func (s *DefaultAdminService) GetStats(ctx context.Context, actor models.Actor) (*models.AdminStats, error) {
	if !actor.IsAdmin() {
		return nil, utils.Forbidden(msgAccessDenied)
	}

	var (
		stats    models.AdminStats
		roles    map[models.Role]int64
		byStatus map[models.BookingStatus]int64
		ratings  models.RatingSummary
		recent   []models.Booking
		reports  map[models.ReportStatus]int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		roles, err = s.store.Users.CountByRole(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.ActiveServices, err = s.store.Services.CountActive(gctx)
		return err
	})
	g.Go(func() (err error) {
		byStatus, err = s.store.Bookings.CountByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		ratings, err = s.store.Reviews.Summary(gctx)
		return err
	})
	g.Go(func() (err error) {
		recent, _, err = s.store.Bookings.List(gctx, models.BookingFilter{
			Page: models.PageRequest{Page: 1, Limit: 5},
		})
		return err
	})
	if s.store.Reports != nil {
		g.Go(func() (err error) {
			reports, err = s.store.Reports.CountByStatus(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, utils.Internal(err)
	}

	for _, n := range roles {
		stats.TotalUsers += n
	}
	stats.TotalCustomers = roles[models.RoleCustomer]
	stats.TotalProviders = roles[models.RoleProvider]
	for _, n := range byStatus {
		stats.TotalBookings += n
	}
	stats.BookingsByStatus = byStatus
	stats.TotalReviews = ratings.Count
	stats.AverageRating = ratings.Average
	stats.RecentBookings = recent
	for _, n := range reports {
		stats.TotalReports += n
	}
	stats.PendingReports = reports[models.ReportPending]
	return &stats, nil
}
