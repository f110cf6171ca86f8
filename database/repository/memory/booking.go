package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"karigar/database/repository"
	"karigar/models"
)

// BookingRepo is an in-memory repository.BookingRepository.
type BookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

// NewBookingRepo returns an empty booking store.
func NewBookingRepo() *BookingRepo {
	return &BookingRepo{bookings: make(map[string]*models.Booking)}
}

func cloneBooking(b *models.Booking) *models.Booking {
	c := *b
	if b.ScheduledAt != nil {
		at := *b.ScheduledAt
		c.ScheduledAt = &at
	}
	c.StatusHistory = append([]models.StatusChange(nil), b.StatusHistory...)
	c.Customer, c.Provider, c.Service, c.Review = nil, nil, nil, nil
	return &c
}

// slotTaken reports whether another active booking holds b's slot.
func (r *BookingRepo) slotTaken(b *models.Booking) bool {
	if !b.Status.IsActive() {
		return false
	}
	for _, other := range r.bookings {
		if other.ID != b.ID && other.SlotActive &&
			other.ProviderID == b.ProviderID &&
			other.ScheduledDate == b.ScheduledDate &&
			other.ScheduledTime == b.ScheduledTime {
			return true
		}
	}
	return false
}

func (r *BookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneBooking(b), nil
}

func (r *BookingRepo) FindActiveInSlot(_ context.Context, providerID, date, timeOfDay string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.SlotActive && b.ProviderID == providerID && b.ScheduledDate == date && b.ScheduledTime == timeOfDay {
			return cloneBooking(b), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *BookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bookings[booking.ID]; exists || r.slotTaken(booking) {
		return repository.ErrDuplicate
	}
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	booking.Version = 1
	booking.SlotActive = booking.Status.IsActive()
	r.bookings[booking.ID] = cloneBooking(booking)
	return nil
}

func (r *BookingRepo) Update(_ context.Context, booking *models.Booking, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.bookings[booking.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return repository.ErrVersionConflict
	}
	if r.slotTaken(booking) {
		return repository.ErrDuplicate
	}

	next := cloneBooking(stored)
	next.Status = booking.Status
	next.ScheduledAt = booking.ScheduledAt
	next.Notes = booking.Notes
	next.StatusHistory = append([]models.StatusChange(nil), booking.StatusHistory...)
	next.SlotActive = next.Status.IsActive()
	next.Version = expectedVersion + 1
	next.UpdatedAt = time.Now().UTC()
	r.bookings[booking.ID] = next

	booking.SlotActive = next.SlotActive
	booking.Version = next.Version
	booking.UpdatedAt = next.UpdatedAt
	return nil
}

func (r *BookingRepo) AttachReview(_ context.Context, bookingID, reviewID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[bookingID]
	if !ok {
		return repository.ErrNotFound
	}
	if b.ReviewID != "" {
		return repository.ErrDuplicate
	}
	b.ReviewID = reviewID
	b.Version++
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *BookingRepo) DetachReview(_ context.Context, bookingID, reviewID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.bookings[bookingID]; ok && b.ReviewID == reviewID {
		b.ReviewID = ""
		b.Version++
		b.UpdatedAt = time.Now().UTC()
	}
	return nil
}

func (r *BookingRepo) List(_ context.Context, filter models.BookingFilter) ([]models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Booking
	for _, b := range r.bookings {
		if filter.CustomerID != "" && b.CustomerID != filter.CustomerID {
			continue
		}
		if filter.ProviderID != "" && b.ProviderID != filter.ProviderID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		matched = append(matched, *cloneBooking(b))
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return page(matched, filter.Page), int64(len(matched)), nil
}

func (r *BookingRepo) CountByStatus(_ context.Context) (map[models.BookingStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[models.BookingStatus]int64, len(models.AllStatuses))
	for _, status := range models.AllStatuses {
		counts[status] = 0
	}
	for _, b := range r.bookings {
		counts[b.Status]++
	}
	return counts, nil
}

func (r *BookingRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}
