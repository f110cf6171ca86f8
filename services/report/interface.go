package report

import (
	"context"
	"fmt"

	"karigar/database/repository"
	"karigar/models"
	"karigar/services/notification"
)

// ReportService lets users flag users, services, reviews and bookings, and
// lets admins work through the reports.
type ReportService interface {
	CreateReport(ctx context.Context, actor models.Actor, input CreateReportInput) (*models.Report, error)
	ListReports(ctx context.Context, actor models.Actor, filter models.ReportFilter) ([]models.Report, models.Pagination, error)
	GetReport(ctx context.Context, actor models.Actor, reportID string) (*models.Report, error)
	UpdateReport(ctx context.Context, actor models.Actor, reportID string, input UpdateReportInput) (*models.Report, error)
	DeleteReport(ctx context.Context, actor models.Actor, reportID string) error
}

// DefaultReportService implements ReportService.
type DefaultReportService struct {
	Reports  repository.ReportRepository
	Users    repository.UserRepository
	Notifier notification.Emitter
}

// NewDefaultReportService wires the report service.
func NewDefaultReportService(store *repository.Store, notifier notification.Emitter) (*DefaultReportService, error) {
	if store == nil || store.Reports == nil || store.Users == nil || notifier == nil {
		return nil, fmt.Errorf("report service initialization error: dependency is nil")
	}
	return &DefaultReportService{
		Reports:  store.Reports,
		Users:    store.Users,
		Notifier: notifier,
	}, nil
}

const (
	msgReportNotFound = "Report not found"
	msgAccessDenied   = "Access denied"
	msgUnauthorized   = "Unauthorized"
)
