package provider

import (
	"context"
	"fmt"

	"karigar/database/repository"
	"karigar/models"
)

// ProviderService is the public provider directory.
type ProviderService interface {
	ListProviders(ctx context.Context, filter models.ProviderFilter) ([]models.ProviderProfile, models.Pagination, error)
	GetProvider(ctx context.Context, providerID string) (*models.ProviderProfile, error)
}

// DefaultProviderService builds directory entries from accounts, services
// and reviews.
type DefaultProviderService struct {
	Users    repository.UserRepository
	Services repository.ServiceRepository
	Reviews  repository.ReviewRepository
}

// NewDefaultProviderService wires the provider directory.
func NewDefaultProviderService(store *repository.Store) (*DefaultProviderService, error) {
	if store == nil || store.Users == nil || store.Services == nil || store.Reviews == nil {
		return nil, fmt.Errorf("provider service initialization error: dependency is nil")
	}
	return &DefaultProviderService{
		Users:    store.Users,
		Services: store.Services,
		Reviews:  store.Reviews,
	}, nil
}
