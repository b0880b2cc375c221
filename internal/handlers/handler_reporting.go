package handlers

import (
	"net/http"

	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	portssvc "github.com/SscSPs/credit_tracking_app/internal/core/ports/services"
	"github.com/SscSPs/credit_tracking_app/internal/dto"
	"github.com/SscSPs/credit_tracking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to ledger reports
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportRoutes registers routes related to ledger reports
func registerReportRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/daily", h.getDailySeries)
		reportingGroup.GET("/daily/:date", h.getDailySummary)
		reportingGroup.GET("/daily/:date/charts", h.getDailyCharts)
		reportingGroup.GET("/latest", h.getLatestSummary)
		reportingGroup.GET("/summary", h.getRangeSummary)
		reportingGroup.GET("/charts", h.getRangeCharts)
	}
}

// bindRange reads from_date/to_date, answering 400 on malformed input.
func bindRange(c *gin.Context) (domain.DateRange, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return domain.DateRange{}, false
	}
	rng, err := params.ToRange()
	if err != nil {
		respondError(c, logger, err, "Failed to read date range")
		return domain.DateRange{}, false
	}
	return rng, true
}

// getDailySummary godoc
// @Summary Summarize one date
// @Description Column totals of a date. A date without entries yields zeros.
// @Tags reports
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.DailySummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /reports/daily/{date} [get]
func (h *reportingHandler) getDailySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	date, ok := pathDate(c, logger, "date")
	if !ok {
		return
	}

	summary, err := h.reportingService.Daily(c.Request.Context(), date)
	if err != nil {
		respondError(c, logger, err, "Failed to generate daily summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToDailySummaryResponse(*summary))
}

// getDailyCharts godoc
// @Summary Chart data for one date
// @Description Payment-method split of receipts and transaction-type distribution of a date.
// @Tags reports
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.DailyChartsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /reports/daily/{date}/charts [get]
func (h *reportingHandler) getDailyCharts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	date, ok := pathDate(c, logger, "date")
	if !ok {
		return
	}

	charts, err := h.reportingService.DailyCharts(c.Request.Context(), date)
	if err != nil {
		respondError(c, logger, err, "Failed to generate daily charts")
		return
	}
	c.JSON(http.StatusOK, dto.ToDailyChartsResponse(*charts))
}

// getDailySeries godoc
// @Summary Daily summaries over a range
// @Description One summary per calendar day, zeros for days without entries. Open bounds default to the ledger's first and last dates.
// @Tags reports
// @Produce json
// @Param from_date query string false "First date (YYYY-MM-DD)"
// @Param to_date query string false "Last date (YYYY-MM-DD)"
// @Success 200 {array} dto.DailySummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /reports/daily [get]
func (h *reportingHandler) getDailySeries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rng, ok := bindRange(c)
	if !ok {
		return
	}

	series, err := h.reportingService.DailySeries(c.Request.Context(), rng)
	if err != nil {
		respondError(c, logger, err, "Failed to generate daily summaries")
		return
	}
	c.JSON(http.StatusOK, dto.ToDailySummaryResponses(series))
}

// getLatestSummary godoc
// @Summary Summarize the most recent date
// @Tags reports
// @Produce json
// @Success 200 {object} dto.DailySummaryResponse
// @Failure 404 {object} dto.ErrorResponse "Ledger is empty"
// @Failure 500 {object} dto.ErrorResponse
// @Router /reports/latest [get]
func (h *reportingHandler) getLatestSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.reportingService.Latest(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to generate latest summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToDailySummaryResponse(*summary))
}

// getRangeSummary godoc
// @Summary Summarize a date range
// @Description Column totals over every entry in the range. Without bounds the whole ledger is summarized.
// @Tags reports
// @Produce json
// @Param from_date query string false "First date (YYYY-MM-DD)"
// @Param to_date query string false "Last date (YYYY-MM-DD)"
// @Success 200 {object} dto.RangeSummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /reports/summary [get]
func (h *reportingHandler) getRangeSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rng, ok := bindRange(c)
	if !ok {
		return
	}

	summary, err := h.reportingService.Summarize(c.Request.Context(), rng)
	if err != nil {
		respondError(c, logger, err, "Failed to generate summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToRangeSummaryResponse(*summary))
}

// getRangeCharts godoc
// @Summary Chart series over a date range
// @Tags reports
// @Produce json
// @Param from_date query string false "First date (YYYY-MM-DD)"
// @Param to_date query string false "Last date (YYYY-MM-DD)"
// @Success 200 {object} dto.RangeChartsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /reports/charts [get]
func (h *reportingHandler) getRangeCharts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rng, ok := bindRange(c)
	if !ok {
		return
	}

	charts, err := h.reportingService.RangeCharts(c.Request.Context(), rng)
	if err != nil {
		respondError(c, logger, err, "Failed to generate charts")
		return
	}
	c.JSON(http.StatusOK, dto.ToRangeChartsResponse(*charts))
}
