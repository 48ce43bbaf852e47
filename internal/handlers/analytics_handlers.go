package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"
)

type AnalyticsHandler struct {
	analytics *repository.AnalyticsRepository
}

func NewAnalyticsHandler(analytics *repository.AnalyticsRepository) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// analyticsRange resolves the from/to query params, defaulting to the last 30 days
func analyticsRange(c *gin.Context) (time.Time, time.Time) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)
	if t := parseDateQuery(c, "from"); t != nil {
		from = *t
	}
	if t := parseDateQuery(c, "to"); t != nil {
		to = *t
	}
	return from, to
}

// GetSummary returns the dashboard headline metrics
// GET /api/v1/analytics/summary
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")
	from, to := analyticsRange(c)

	summary, err := h.analytics.GetSummary(tenantID.(string), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "FETCH_FAILED", Message: "Failed to compute summary"},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: summary})
}

// GetSalesTrend returns bucketed revenue/order counts over a date range
// GET /api/v1/analytics/sales-trend?interval=day|week|month
func (h *AnalyticsHandler) GetSalesTrend(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")
	from, to := analyticsRange(c)
	interval := repository.ParseTrendInterval(c.DefaultQuery("interval", "day"))

	points, err := h.analytics.GetSalesTrend(tenantID.(string), from, to, interval)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "FETCH_FAILED", Message: "Failed to compute sales trend"},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: points})
}

// GetTopVariants returns the best sellers by revenue for a date range
// GET /api/v1/analytics/top-variants?limit=N
func (h *AnalyticsHandler) GetTopVariants(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")
	from, to := analyticsRange(c)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 10
	}

	variants, err := h.analytics.GetTopVariants(tenantID.(string), from, to, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "FETCH_FAILED", Message: "Failed to compute top variants"},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: variants})
}
