package listing

import (
	"context"
	"errors"
	"strings"

	"karigar/database/repository"
	"karigar/models"
	"karigar/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ServiceInput is the body of a new listing.
type ServiceInput struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Price       float64          `json:"price"`
	PriceType   models.PriceType `json:"priceType"`
	Location    string           `json:"location"`
	Images      []string         `json:"images"`
}

// ServiceUpdate changes only the fields present in the request.
type ServiceUpdate struct {
	Title       models.Optional[string]           `json:"title"`
	Description models.Optional[string]           `json:"description"`
	Category    models.Optional[string]           `json:"category"`
	Price       models.Optional[float64]          `json:"price"`
	PriceType   models.Optional[models.PriceType] `json:"priceType"`
	Location    models.Optional[string]           `json:"location"`
	Images      models.Optional[[]string]         `json:"images"`
	IsActive    models.Optional[bool]             `json:"isActive"`
}

// ListServices pages through the catalogue. Without a provider filter only
// active listings are shown.
func (s *DefaultListingService) ListServices(ctx context.Context, filter models.ServiceFilter) ([]models.Service, models.Pagination, error) {
	filter.OnlyActive = filter.ProviderID == ""
	filter.Page = filter.Page.Normalize(12)

	services, total, err := s.Services.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, utils.Internal(err)
	}
	if err := s.attachProviders(ctx, services); err != nil {
		return nil, models.Pagination{}, utils.Internal(err)
	}
	return services, models.NewPagination(filter.Page, total), nil
}

// GetService returns one listing with its provider.
func (s *DefaultListingService) GetService(ctx context.Context, serviceID string) (*models.Service, error) {
	if s.Cache != nil {
		if cached, ok := s.Cache.Get(ctx, serviceID); ok {
			return cached, nil
		}
	}

	service, err := s.Services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("Service not found")
		}
		return nil, utils.Internal(err)
	}
	one := []models.Service{*service}
	if err := s.attachProviders(ctx, one); err != nil {
		return nil, utils.Internal(err)
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, &one[0]); err != nil {
			utils.GetLogger().Debug("Failed to cache service", zap.String("serviceId", serviceID), zap.Error(err))
		}
	}
	return &one[0], nil
}

// invalidate drops a cached listing after it changed.
func (s *DefaultListingService) invalidate(ctx context.Context, serviceID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, serviceID); err != nil {
		utils.GetLogger().Warn("Failed to invalidate cached service", zap.String("serviceId", serviceID), zap.Error(err))
	}
}

// CreateService publishes a listing owned by the calling provider.
func (s *DefaultListingService) CreateService(ctx context.Context, actor models.Actor, input ServiceInput) (*models.Service, error) {
	if actor.Role != models.RoleProvider {
		return nil, utils.Forbidden("Only providers can create services")
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Category = strings.TrimSpace(input.Category)
	input.Location = strings.TrimSpace(input.Location)
	if input.Title == "" || input.Category == "" || input.Location == "" {
		return nil, utils.Validation("Title, category, price, and location are required")
	}
	if input.Price < 0 {
		return nil, utils.Validation("Price cannot be negative")
	}
	if input.PriceType == "" {
		input.PriceType = models.PriceFixed
	}
	if !input.PriceType.IsValid() {
		return nil, utils.Validation("Price type must be FIXED, HOURLY or SQFT")
	}

	service := &models.Service{
		ID:          uuid.New().String(),
		ProviderID:  actor.ID,
		Title:       input.Title,
		Description: strings.TrimSpace(input.Description),
		Category:    input.Category,
		Price:       input.Price,
		PriceType:   input.PriceType,
		Location:    input.Location,
		Images:      input.Images,
		IsActive:    true,
	}
	if err := s.Services.Create(ctx, service); err != nil {
		return nil, utils.Internal(err)
	}
	utils.GetLogger().Info("Service created", zap.String("serviceId", service.ID), zap.String("providerId", actor.ID))
	return service, nil
}

func (s *DefaultListingService) loadOwned(ctx context.Context, actor models.Actor, serviceID string) (*models.Service, error) {
	service, err := s.Services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("Service not found")
		}
		return nil, utils.Internal(err)
	}
	if !actor.IsAdmin() && service.ProviderID != actor.ID {
		return nil, utils.Forbidden("Access denied")
	}
	return service, nil
}

// UpdateService edits a listing. Existing bookings keep the price they were
// made at.
func (s *DefaultListingService) UpdateService(
	ctx context.Context,
	actor models.Actor,
	serviceID string,
	input ServiceUpdate,
) (*models.Service, error) {
	service, err := s.loadOwned(ctx, actor, serviceID)
	if err != nil {
		return nil, err
	}

	if input.Title.Set {
		if strings.TrimSpace(input.Title.Value) == "" {
			return nil, utils.Validation("Title cannot be empty")
		}
		service.Title = strings.TrimSpace(input.Title.Value)
	}
	if input.Description.Set {
		service.Description = strings.TrimSpace(input.Description.Value)
	}
	if input.Category.Set {
		if strings.TrimSpace(input.Category.Value) == "" {
			return nil, utils.Validation("Category cannot be empty")
		}
		service.Category = strings.TrimSpace(input.Category.Value)
	}
	if input.Price.Set {
		if input.Price.Null || input.Price.Value < 0 {
			return nil, utils.Validation("Price cannot be negative")
		}
		service.Price = input.Price.Value
	}
	if input.PriceType.Set {
		if !input.PriceType.Value.IsValid() {
			return nil, utils.Validation("Price type must be FIXED, HOURLY or SQFT")
		}
		service.PriceType = input.PriceType.Value
	}
	if input.Location.Set {
		service.Location = strings.TrimSpace(input.Location.Value)
	}
	if input.Images.Set {
		service.Images = input.Images.Value
	}
	if input.IsActive.Set {
		service.IsActive = input.IsActive.Value
	}

	if err := s.Services.Update(ctx, service); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("Service not found")
		}
		return nil, utils.Internal(err)
	}
	s.invalidate(ctx, serviceID)
	return service, nil
}

// DeleteService removes a listing. Bookings made against it are kept.
func (s *DefaultListingService) DeleteService(ctx context.Context, actor models.Actor, serviceID string) error {
	if _, err := s.loadOwned(ctx, actor, serviceID); err != nil {
		return err
	}
	if err := s.Services.Delete(ctx, serviceID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NotFound("Service not found")
		}
		return utils.Internal(err)
	}
	s.invalidate(ctx, serviceID)
	return nil
}

func (s *DefaultListingService) attachProviders(ctx context.Context, services []models.Service) error {
	ids := make([]string, 0, len(services))
	for _, svc := range services {
		ids = append(ids, svc.ProviderID)
	}
	users, err := s.Users.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range services {
		services[i].Provider = users[services[i].ProviderID].Summary()
	}
	return nil
}
