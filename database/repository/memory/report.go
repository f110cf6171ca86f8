package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"karigar/database/repository"
	"karigar/models"
)

// ReportRepo is an in-memory repository.ReportRepository.
type ReportRepo struct {
	mu      sync.Mutex
	reports map[string]models.Report
}

// NewReportRepo returns an empty report store.
func NewReportRepo() *ReportRepo {
	return &ReportRepo{reports: make(map[string]models.Report)}
}

func (r *ReportRepo) GetByID(_ context.Context, id string) (*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rp, ok := r.reports[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rp, nil
}

func (r *ReportRepo) Create(_ context.Context, report *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reports[report.ID]; exists {
		return repository.ErrDuplicate
	}
	now := time.Now().UTC()
	report.CreatedAt = now
	report.UpdatedAt = now
	stored := *report
	stored.Reporter, stored.TargetUser = nil, nil
	r.reports[report.ID] = stored
	return nil
}

func (r *ReportRepo) Update(_ context.Context, report *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.reports[report.ID]
	if !ok {
		return repository.ErrNotFound
	}
	report.UpdatedAt = time.Now().UTC()
	stored.Status = report.Status
	stored.Resolution = report.Resolution
	stored.UpdatedAt = report.UpdatedAt
	r.reports[report.ID] = stored
	return nil
}

func (r *ReportRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reports[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.reports, id)
	return nil
}

func (r *ReportRepo) List(_ context.Context, filter models.ReportFilter) ([]models.Report, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Report
	for _, rp := range r.reports {
		if filter.ReporterID != "" && rp.ReporterID != filter.ReporterID {
			continue
		}
		if filter.Status != "" && rp.Status != filter.Status {
			continue
		}
		if filter.Type != "" && rp.Type != filter.Type {
			continue
		}
		matched = append(matched, rp)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return page(matched, filter.Page), int64(len(matched)), nil
}

func (r *ReportRepo) CountByStatus(_ context.Context) (map[models.ReportStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[models.ReportStatus]int64)
	for _, rp := range r.reports {
		counts[rp.Status]++
	}
	return counts, nil
}
