package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"karigar/database/repository"
	"karigar/models"
)

// ServiceRepo is an in-memory repository.ServiceRepository.
type ServiceRepo struct {
	mu       sync.Mutex
	services map[string]models.Service
}

// NewServiceRepo returns an empty service store.
func NewServiceRepo() *ServiceRepo {
	return &ServiceRepo{services: make(map[string]models.Service)}
}

func (r *ServiceRepo) GetByID(_ context.Context, id string) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *ServiceRepo) Create(_ context.Context, service *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.services[service.ID]; exists {
		return repository.ErrDuplicate
	}
	now := time.Now().UTC()
	service.CreatedAt = now
	service.UpdatedAt = now
	stored := *service
	stored.Provider = nil
	r.services[service.ID] = stored
	return nil
}

func (r *ServiceRepo) Update(_ context.Context, service *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.services[service.ID]; !ok {
		return repository.ErrNotFound
	}
	service.UpdatedAt = time.Now().UTC()
	stored := *service
	stored.Provider = nil
	r.services[service.ID] = stored
	return nil
}

func (r *ServiceRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.services[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.services, id)
	return nil
}

func (r *ServiceRepo) List(_ context.Context, filter models.ServiceFilter) ([]models.Service, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Service
	for _, s := range r.services {
		if filter.Matches(&s) {
			matched = append(matched, s)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return page(matched, filter.Page), int64(len(matched)), nil
}

func (r *ServiceRepo) CountActive(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, s := range r.services {
		if s.IsActive {
			n++
		}
	}
	return n, nil
}

func (r *ServiceRepo) ListActiveByProviders(_ context.Context, providerIDs []string) ([]models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := make(map[string]bool, len(providerIDs))
	for _, id := range providerIDs {
		wanted[id] = true
	}
	matched := []models.Service{}
	for _, s := range r.services {
		if s.IsActive && wanted[s.ProviderID] {
			matched = append(matched, s)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}
