package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tally/internal/services"
)

// ReportHandler handles derived-aggregate requests.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetMonthlySpending returns total expenses for a calendar month
// @Summary     Monthly spending
// @Description Summed expenses within the given calendar month, in cents
// @Tags        reports
// @Produce     json
// @Param       year  query int true "Calendar year"
// @Param       month query int true "Month number (1-12)"
// @Success     200 {object} map[string]int64 "Monthly total"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/monthly [get]
func (h *ReportHandler) GetMonthlySpending(c *gin.Context) {
	year, month, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	total, err := h.reportService.MonthlySpending(year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"year": year, "month": int(month), "total": total})
}

// GetDailySpending returns per-day expense totals over a range
// @Summary     Daily spending
// @Description One (date, total) pair per day with expenses in the inclusive range
// @Tags        reports
// @Produce     json
// @Param       from query string true "Start date (DD-MM-YYYY or YYYY-MM-DD)"
// @Param       to   query string true "End date (DD-MM-YYYY or YYYY-MM-DD)"
// @Success     200 {object} map[string][]services.DailyTotal "Daily totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/daily [get]
func (h *ReportHandler) GetDailySpending(c *gin.Context) {
	from, to, err := parseRangeQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.reportService.DailySpending(from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"daily": totals})
}

// GetCumulativeSpending returns the running expense total for a month
// @Summary     Cumulative spending
// @Description Running expense total per day-of-month, ascending
// @Tags        reports
// @Produce     json
// @Param       year  query int true "Calendar year"
// @Param       month query int true "Month number (1-12)"
// @Success     200 {object} map[string][]services.DayCumulative "Cumulative totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/cumulative [get]
func (h *ReportHandler) GetCumulativeSpending(c *gin.Context) {
	year, month, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.reportService.CumulativeSpending(year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cumulative": totals})
}

// GetExpensesByCategory returns per-category expense totals over a range
// @Summary     Expenses by category
// @Description Per-category expense totals in the inclusive range, largest first
// @Tags        reports
// @Produce     json
// @Param       from query string true "Start date (DD-MM-YYYY or YYYY-MM-DD)"
// @Param       to   query string true "End date (DD-MM-YYYY or YYYY-MM-DD)"
// @Success     200 {object} map[string][]services.CategoryTotal "Category totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/by-category [get]
func (h *ReportHandler) GetExpensesByCategory(c *gin.Context) {
	from, to, err := parseRangeQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.reportService.ExpensesByCategory(from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": totals})
}

// GetExpensesByMonth returns per-month expense totals
// @Summary     Expenses by month
// @Description Per-calendar-month expense totals over the trailing window, most recent first
// @Tags        reports
// @Produce     json
// @Param       months query int false "Trailing window size in months (default 12)"
// @Success     200 {object} map[string][]services.MonthTotal "Monthly totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/by-month [get]
func (h *ReportHandler) GetExpensesByMonth(c *gin.Context) {
	months, err := parseMonthsQuery(c, 12)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.reportService.ExpensesByMonth(months)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"months": totals})
}

// GetExpensesByTag returns per-tag expense totals
// @Summary     Expenses by tag
// @Description Per-tag expense totals over the trailing window. A transaction's full amount counts toward every tag it carries.
// @Tags        reports
// @Produce     json
// @Param       months query int false "Trailing window size in months (default 12)"
// @Success     200 {object} map[string][]services.TagTotal "Tag totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/by-tag [get]
func (h *ReportHandler) GetExpensesByTag(c *gin.Context) {
	months, err := parseMonthsQuery(c, 12)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.reportService.ExpensesByTag(months)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": totals})
}

// GetExpensesByCategoryAndMonth returns month-by-category expense totals
// @Summary     Expenses by category and month
// @Description (month, category, total) triples over the inclusive range
// @Tags        reports
// @Produce     json
// @Param       from query string true "Start date (DD-MM-YYYY or YYYY-MM-DD)"
// @Param       to   query string true "End date (DD-MM-YYYY or YYYY-MM-DD)"
// @Success     200 {object} map[string][]services.MonthCategoryTotal "Month/category totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/by-category-and-month [get]
func (h *ReportHandler) GetExpensesByCategoryAndMonth(c *gin.Context) {
	from, to, err := parseRangeQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.reportService.ExpensesByCategoryAndMonth(from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"breakdown": totals})
}
