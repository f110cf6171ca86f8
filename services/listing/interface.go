package listing

import (
	"context"
	"fmt"

	"karigar/database/repository"
	"karigar/models"
)

// ListingService manages the service catalogue providers publish.
type ListingService interface {
	ListServices(ctx context.Context, filter models.ServiceFilter) ([]models.Service, models.Pagination, error)
	GetService(ctx context.Context, serviceID string) (*models.Service, error)
	CreateService(ctx context.Context, actor models.Actor, input ServiceInput) (*models.Service, error)
	UpdateService(ctx context.Context, actor models.Actor, serviceID string, input ServiceUpdate) (*models.Service, error)
	DeleteService(ctx context.Context, actor models.Actor, serviceID string) error
}

// DefaultListingService implements ListingService.
type DefaultListingService struct {
	Services repository.ServiceRepository
	Users    repository.UserRepository
	// Cache is optional and only serves GetService.
	Cache ServiceCache
}

// NewDefaultListingService wires the catalogue service. Cache may be set afterwards.
func NewDefaultListingService(store *repository.Store) (*DefaultListingService, error) {
	if store == nil || store.Services == nil || store.Users == nil {
		return nil, fmt.Errorf("listing service initialization error: repository is nil")
	}
	return &DefaultListingService{Services: store.Services, Users: store.Users}, nil
}
