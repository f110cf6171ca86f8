package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"karigar/database/repository"
	"karigar/models"
)

// ReviewRepo is an in-memory repository.ReviewRepository.
type ReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]models.Review
}

// NewReviewRepo returns an empty review store.
func NewReviewRepo() *ReviewRepo {
	return &ReviewRepo{reviews: make(map[string]models.Review)}
}

func (r *ReviewRepo) GetByID(_ context.Context, id string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rv, ok := r.reviews[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rv, nil
}

func (r *ReviewRepo) GetByBookingID(_ context.Context, bookingID string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rv := range r.reviews {
		if rv.BookingID == bookingID {
			return &rv, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *ReviewRepo) Create(_ context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rv := range r.reviews {
		if rv.ID == review.ID || rv.BookingID == review.BookingID {
			return repository.ErrDuplicate
		}
	}
	review.CreatedAt = time.Now().UTC()
	stored := *review
	stored.Customer, stored.Provider = nil, nil
	r.reviews[review.ID] = stored
	return nil
}

func (r *ReviewRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}

func (r *ReviewRepo) List(_ context.Context, filter models.ReviewFilter) ([]models.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Review
	for _, rv := range r.reviews {
		if filter.ProviderID != "" && rv.ProviderID != filter.ProviderID {
			continue
		}
		if filter.CustomerID != "" && rv.CustomerID != filter.CustomerID {
			continue
		}
		matched = append(matched, rv)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return page(matched, filter.Page), int64(len(matched)), nil
}

func (r *ReviewRepo) Summary(_ context.Context) (models.RatingSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var summary models.RatingSummary
	total := 0
	for _, rv := range r.reviews {
		summary.Count++
		total += rv.Rating
	}
	if summary.Count > 0 {
		summary.Average = float64(total) / float64(summary.Count)
	}
	return summary, nil
}

func (r *ReviewRepo) SummaryByProvider(_ context.Context, providerIDs []string) (map[string]models.RatingSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := make(map[string]bool, len(providerIDs))
	for _, id := range providerIDs {
		wanted[id] = true
	}
	totals := make(map[string]int)
	summaries := make(map[string]models.RatingSummary)
	for _, rv := range r.reviews {
		if !wanted[rv.ProviderID] {
			continue
		}
		sum := summaries[rv.ProviderID]
		sum.Count++
		summaries[rv.ProviderID] = sum
		totals[rv.ProviderID] += rv.Rating
	}
	for id, sum := range summaries {
		sum.Average = float64(totals[id]) / float64(sum.Count)
		summaries[id] = sum
	}
	return summaries, nil
}
