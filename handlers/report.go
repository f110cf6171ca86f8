package handlers

import (
	"net/http"
	"strings"

	"karigar/models"
	"karigar/services/report"
	"karigar/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves moderation reports.
type ReportHandler struct {
	Service report.ReportService
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(svc report.ReportService) *ReportHandler {
	return &ReportHandler{Service: svc}
}

// CreateReportHandler POST /api/reports
func (h *ReportHandler) CreateReportHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var input report.CreateReportInput
	if !bindJSON(c, &input) {
		return
	}
	created, err := h.Service.CreateReport(c.Request.Context(), actor, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListReportsHandler GET /api/reports
func (h *ReportHandler) ListReportsHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	filter := models.ReportFilter{
		Status: models.ReportStatus(strings.ToUpper(c.Query("status"))),
		Type:   models.ReportType(strings.ToUpper(c.Query("type"))),
		Page:   pageFromQuery(c),
	}
	reports, page, err := h.Service.ListReports(c.Request.Context(), actor, filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports, "pagination": page})
}

// GetReportHandler GET /api/reports/:id
func (h *ReportHandler) GetReportHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	found, err := h.Service.GetReport(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

// UpdateReportHandler PUT /api/reports/:id
func (h *ReportHandler) UpdateReportHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var input report.UpdateReportInput
	if !bindJSON(c, &input) {
		return
	}
	updated, err := h.Service.UpdateReport(c.Request.Context(), actor, c.Param("id"), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteReportHandler DELETE /api/reports/:id
func (h *ReportHandler) DeleteReportHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.Service.DeleteReport(c.Request.Context(), actor, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Report deleted successfully"})
}
