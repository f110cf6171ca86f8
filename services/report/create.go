package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"karigar/models"
	"karigar/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	notifyTimeout     = 5 * time.Second
	notifyConcurrency = 4
)

// CreateReportInput is the body of a new report. At least one target id
// must be set.
type CreateReportInput struct {
	Type            string `json:"type"`
	Reason          string `json:"reason"`
	Description     string `json:"description"`
	TargetUserID    string `json:"targetUserId"`
	TargetServiceID string `json:"targetServiceId"`
	TargetReviewID  string `json:"targetReviewId"`
	TargetBookingID string `json:"targetBookingId"`
}

// CreateReport files a PENDING report and tells every admin about it.
func (s *DefaultReportService) CreateReport(
	ctx context.Context,
	actor models.Actor,
	input CreateReportInput,
) (*models.Report, error) {
	if actor.ID == "" {
		return nil, utils.Unauthorized(msgUnauthorized)
	}

	kind := models.ReportType(strings.ToUpper(strings.TrimSpace(input.Type)))
	reason := strings.TrimSpace(input.Reason)
	if kind == "" || reason == "" {
		return nil, utils.Validation("Type and reason are required")
	}
	if !kind.IsValid() {
		return nil, utils.Validation("Invalid report type")
	}

	report := &models.Report{
		ID:              uuid.New().String(),
		ReporterID:      actor.ID,
		Type:            kind,
		Reason:          reason,
		Description:     strings.TrimSpace(input.Description),
		TargetUserID:    strings.TrimSpace(input.TargetUserID),
		TargetServiceID: strings.TrimSpace(input.TargetServiceID),
		TargetReviewID:  strings.TrimSpace(input.TargetReviewID),
		TargetBookingID: strings.TrimSpace(input.TargetBookingID),
		Status:          models.ReportPending,
	}
	if !report.HasTarget() {
		return nil, utils.Validation("A target must be specified")
	}
	if report.TargetUserID == actor.ID {
		return nil, utils.Validation("You cannot report yourself")
	}

	if err := s.Reports.Create(ctx, report); err != nil {
		return nil, utils.Internal(err)
	}
	utils.GetLogger().Info("Report submitted",
		zap.String("reportId", report.ID),
		zap.String("reporterId", actor.ID),
		zap.String("type", string(kind)),
	)

	if err := s.hydrate(ctx, report); err != nil {
		utils.GetLogger().Warn("Failed to load report parties", zap.String("reportId", report.ID), zap.Error(err))
	}
	s.notifyAdmins(ctx, report)
	return report, nil
}

// notifyAdmins fans the new report out to every admin except the reporter.
// Delivery is best effort.
func (s *DefaultReportService) notifyAdmins(ctx context.Context, report *models.Report) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	logger := utils.GetLogger().With(zap.String("reportId", report.ID))

	admins, err := s.Users.IDsByRole(ctx, models.RoleAdmin)
	if err != nil {
		logger.Error("Failed to load admins for report notification", zap.Error(err))
		return
	}

	message := fmt.Sprintf("A new %s report has been submitted: %s", strings.ToLower(string(report.Type)), report.Reason)
	var g errgroup.Group
	g.SetLimit(notifyConcurrency)
	for _, adminID := range admins {
		if adminID == report.ReporterID {
			continue
		}
		adminID := adminID
		g.Go(func() error {
			if err := s.Notifier.Emit(ctx, adminID, "New Report Submitted", message, models.NotificationReport); err != nil {
				logger.Error("Failed to emit report notification", zap.String("recipient", adminID), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
}
