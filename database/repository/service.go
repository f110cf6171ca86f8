package repository

import (
	"context"

	"karigar/models"
)

// ServiceRepository defines persistence for service listings.
type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*models.Service, error)
	Create(ctx context.Context, service *models.Service) error
	Update(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter models.ServiceFilter) ([]models.Service, int64, error)
	CountActive(ctx context.Context) (int64, error)
	// ListActiveByProviders returns the active services of the providers,
	// newest first.
	ListActiveByProviders(ctx context.Context, providerIDs []string) ([]models.Service, error)
}
