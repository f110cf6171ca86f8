package repository

import (
	"context"

	"karigar/models"
)

// ReportRepository defines persistence for moderation reports.
type ReportRepository interface {
	GetByID(ctx context.Context, id string) (*models.Report, error)
	Create(ctx context.Context, report *models.Report) error
	// Update stores the status and resolution of the report.
	Update(ctx context.Context, report *models.Report) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter models.ReportFilter) ([]models.Report, int64, error)
	CountByStatus(ctx context.Context) (map[models.ReportStatus]int64, error)
}
