package report

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"karigar/database/repository"
	"karigar/models"
	"karigar/utils"

	"go.uber.org/zap"
)

// UpdateReportInput is an admin's moderation of a report. Omitted fields
// are left alone.
type UpdateReportInput struct {
	Status     models.Optional[string] `json:"status"`
	Resolution models.Optional[string] `json:"resolution"`
}

// ListReports pages through reports. Admins see every report; everyone
// else sees only the reports they filed.
func (s *DefaultReportService) ListReports(
	ctx context.Context,
	actor models.Actor,
	filter models.ReportFilter,
) ([]models.Report, models.Pagination, error) {
	if actor.ID == "" {
		return nil, models.Pagination{}, utils.Unauthorized(msgUnauthorized)
	}
	if !actor.IsAdmin() {
		filter.ReporterID = actor.ID
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, models.Pagination{}, utils.Validation("Invalid status")
	}
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, models.Pagination{}, utils.Validation("Invalid report type")
	}

	filter.Page = filter.Page.Normalize(models.DefaultPageLimit)
	reports, total, err := s.Reports.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, utils.Internal(err)
	}

	ptrs := make([]*models.Report, len(reports))
	for i := range reports {
		ptrs[i] = &reports[i]
	}
	if err := s.hydrate(ctx, ptrs...); err != nil {
		return nil, models.Pagination{}, utils.Internal(err)
	}
	return reports, models.NewPagination(filter.Page, total), nil
}

// GetReport returns one report to its reporter or an admin.
func (s *DefaultReportService) GetReport(ctx context.Context, actor models.Actor, reportID string) (*models.Report, error) {
	if actor.ID == "" {
		return nil, utils.Unauthorized(msgUnauthorized)
	}
	report, err := s.load(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && report.ReporterID != actor.ID {
		return nil, utils.Forbidden(msgAccessDenied)
	}
	if err := s.hydrate(ctx, report); err != nil {
		return nil, utils.Internal(err)
	}
	return report, nil
}

// UpdateReport moves a report between moderation states and records the
// resolution. The reporter is notified when the status changes.
func (s *DefaultReportService) UpdateReport(
	ctx context.Context,
	actor models.Actor,
	reportID string,
	input UpdateReportInput,
) (*models.Report, error) {
	if !actor.IsAdmin() {
		return nil, utils.Forbidden(msgAccessDenied)
	}

	var status models.ReportStatus
	if input.Status.Set && !input.Status.Null {
		status = models.ReportStatus(strings.ToUpper(strings.TrimSpace(input.Status.Value)))
		if status != "" && !status.IsValid() {
			return nil, utils.Validation("Invalid status")
		}
	}

	report, err := s.load(ctx, reportID)
	if err != nil {
		return nil, err
	}
	previous := report.Status
	if status != "" {
		report.Status = status
	}
	if input.Resolution.Set {
		report.Resolution = strings.TrimSpace(input.Resolution.Value)
	}

	if err := s.Reports.Update(ctx, report); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound(msgReportNotFound)
		}
		return nil, utils.Internal(err)
	}
	if err := s.hydrate(ctx, report); err != nil {
		utils.GetLogger().Warn("Failed to load report parties", zap.String("reportId", report.ID), zap.Error(err))
	}

	if report.Status != previous {
		utils.GetLogger().Info("Report status changed",
			zap.String("reportId", report.ID),
			zap.String("from", string(previous)),
			zap.String("to", string(report.Status)),
			zap.String("adminId", actor.ID),
		)
		s.notifyReporter(ctx, report)
	}
	return report, nil
}

func (s *DefaultReportService) notifyReporter(ctx context.Context, report *models.Report) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	message := fmt.Sprintf("Your report has been updated to: %s", report.Status)
	if report.Resolution != "" {
		message += ". Resolution: " + report.Resolution
	}
	if err := s.Notifier.Emit(ctx, report.ReporterID, "Report Status Updated", message, models.NotificationReport); err != nil {
		utils.GetLogger().Error("Failed to emit report status notification",
			zap.String("reportId", report.ID),
			zap.String("reporterId", report.ReporterID),
			zap.Error(err),
		)
	}
}

// DeleteReport removes a report. Admin only.
func (s *DefaultReportService) DeleteReport(ctx context.Context, actor models.Actor, reportID string) error {
	if !actor.IsAdmin() {
		return utils.Forbidden(msgAccessDenied)
	}
	if err := s.Reports.Delete(ctx, reportID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NotFound(msgReportNotFound)
		}
		return utils.Internal(err)
	}
	return nil
}

func (s *DefaultReportService) load(ctx context.Context, reportID string) (*models.Report, error) {
	report, err := s.Reports.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound(msgReportNotFound)
		}
		return nil, utils.Internal(err)
	}
	return report, nil
}

// hydrate attaches the reporter and the reported user.
func (s *DefaultReportService) hydrate(ctx context.Context, reports ...*models.Report) error {
	var ids []string
	for _, r := range reports {
		ids = append(ids, r.ReporterID)
		if r.TargetUserID != "" {
			ids = append(ids, r.TargetUserID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	users, err := s.Users.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, r := range reports {
		r.Reporter = users[r.ReporterID].Summary()
		if r.TargetUserID != "" {
			r.TargetUser = users[r.TargetUserID].Summary()
		}
	}
	return nil
}
