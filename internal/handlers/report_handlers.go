package handlers

import (
	"errors"
	"net/http"

	"portside_pos_backend/internal/services"
	"portside_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves the dashboard and the daily report.
type ReportHandler struct {
	dashboardService services.DashboardService
	reportService    services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(ds services.DashboardService, rs services.ReportService) *ReportHandler {
	return &ReportHandler{dashboardService: ds, reportService: rs}
}

// GetDashboardSummary retrieves key metrics for the dashboard.
func (h *ReportHandler) GetDashboardSummary(c *gin.Context) {
	summary, err := h.dashboardService.Summary()
	if err != nil {
		utils.LogError(err, "GetDashboardSummary: Error from dashboardService.Summary")
		utils.RespondInternal(c, "Failed to build dashboard.")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetDailyReport returns revenue against expenses for ?date=YYYY-MM-DD.
func (h *ReportHandler) GetDailyReport(c *gin.Context) {
	report, err := h.reportService.Daily(c.Query("date"))
	if err != nil {
		respondReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ExportDailyReport downloads the daily report as a spreadsheet.
func (h *ReportHandler) ExportDailyReport(c *gin.Context) {
	data, filename, err := h.reportService.ExportDaily(c.Query("date"))
	if err != nil {
		respondReportError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

func respondReportError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrInvalidDate) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date, please use YYYY-MM-DD.", err.Error()))
		return
	}
	utils.LogError(err, "Report: Error from reportService")
	utils.RespondInternal(c, "Failed to build report.")
}
