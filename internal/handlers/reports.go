package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"shelflife/internal/repository"
	"shelflife/internal/service"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
	errListReports = "failed to load reports"
	errGetReport   = "failed to load report"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      List evaluation reports
// @Description  Filter reports by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). If 'to' is date-only, it is treated as end-of-day inclusive.
// @Tags         evaluations
// @Produce      json
// @Param        from      query   string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"  example(2025-08-01)
// @Param        to        query   string  false  "End of range. Date-only treated as end of day."  example(2025-08-31)
// @Param        category  query   string  false  "Decision category"  Enums(FULL_SUPPORT_EXTRAPOLATION,PARTIAL_SUPPORT_EXTRAPOLATION,LOW_VARIABILITY_EXTRAPOLATION,ACCELERATED_FULL_SUPPORT,ACCELERATED_PARTIAL_SUPPORT,NO_EXTRAPOLATION_FROZEN,NO_EXTRAPOLATION_BOTH_CONDITIONS,NO_EXTRAPOLATION_INTERMEDIATE,NO_EXTRAPOLATION_ACCELERATED,NO_EXTRAPOLATION_INSUFFICIENT)
// @Success      200   {object}  map[string]interface{}  "count, reports"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/evaluations [get]
// @Security     BearerAuth
func (h *Handler) listReports(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		from     time.Time
		to       time.Time
		category = c.Query("category")
		err      error
	)
	// Parse 'from' (optional)
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return
		}
	}
	// Parse 'to' (optional). If only a date is provided, make it end-of-day inclusive.
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'from' must be <= 'to'"})
		return
	}
	reports, err := h.services.Reports.List(ctx, service.ReportFilter{
		From:     from,
		To:       to,
		Category: category,
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListReports, "reports_list_failed", err,
			"from", from, "to", to, "category", category)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(reports),
		"reports": reports,
	})
}

// @Summary      Get an evaluation report by ID
// @Tags         evaluations
// @Produce      json
// @Param        id   path   string  true  "Report ID"
// @Success      200  {object}  shelflife.ShelfLifeReport
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/evaluations/{id} [get]
// @Security     BearerAuth
func (h *Handler) getReport(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	report, err := h.services.Reports.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errGetReport, "report_get_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary      Get the most recent evaluation report
// @Tags         evaluations
// @Produce      json
// @Success      200  {object}  shelflife.ShelfLifeReport
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/evaluations/latest [get]
// @Security     BearerAuth
func (h *Handler) latestReport(c *gin.Context) {
	ctx := c.Request.Context()
	report, err := h.services.Reports.Latest(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no reports yet"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errGetReport, "report_latest_failed", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func parseQueryTime(s string) (time.Time, error) {
	// Try multiple accepted formats, normalizing to UTC.
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
