package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "painel/internal/errors"
	"painel/internal/services"
)

// ReportHandler serves monthly reports and their exports.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ExportQuery selects the export file format.
type ExportQuery struct {
	Format string `form:"format" binding:"omitempty,report_format"`
}

// GetMonthlyReport handles the monthly report
// @Summary     Monthly report
// @Description Transactions of a month, newest first, with totals and neighbouring months
// @Tags        reports
// @Produce     json
// @Param       year  query int false "Year (default current)"
// @Param       month query int false "Month 1-12 (default current)"
// @Success     200 {object} services.MonthlyReport "Report"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /reports/monthly [get]
func (h *ReportHandler) GetMonthlyReport(c *gin.Context) {
	month, err := parseMonth(c, h.reportService.CurrentMonth())
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reportService.GetMonthlyReport(c.Request.Context(), month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportMonthlyReport handles downloading a monthly report
// @Summary     Export monthly report
// @Tags        reports
// @Produce     text/csv
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param       year   query int    false "Year (default current)"
// @Param       month  query int    false "Month 1-12 (default current)"
// @Param       format query string false "csv, xlsx or json (default csv)"
// @Success     200 {file}   file "Report file"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /reports/monthly/export [get]
func (h *ReportHandler) ExportMonthlyReport(c *gin.Context) {
	var q ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	month, err := parseMonth(c, h.reportService.CurrentMonth())
	if err != nil {
		respondWithError(c, err)
		return
	}

	if q.Format == "json" {
		h.GetMonthlyReport(c)
		return
	}

	format := services.ReportFormatCSV
	if q.Format != "" {
		format = services.ReportFormat(q.Format)
	}

	file, err := h.reportService.ExportMonthlyReport(c.Request.Context(), month, format)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
