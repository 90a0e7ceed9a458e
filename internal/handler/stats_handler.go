package handler

import (
	"net/http"

	"shoptrack/internal/middleware"
	"shoptrack/internal/service"
	"shoptrack/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService service.StatsService
}

func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) RegisterRoutes(router *gin.RouterGroup) {
	stats := router.Group("/api/stats", middleware.RequireAuth())
	{
		stats.GET("/dashboard", h.GetDashboard)
		stats.GET("/monthly", h.GetMonthlyTrend)
		stats.GET("/categories", h.GetCategoryBreakdown)
		stats.GET("/statuses", h.GetStatusSummary)
	}
}

// GetDashboard returns headline profitability figures
// @Summary      Dashboard statistics
// @Description  Settled revenue, gross and net profit, active return losses and margin over the caller's orders
// @Tags         statistics
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=model.DashboardStats}
// @Failure      401  {object}  response.Response
// @Router       /api/stats/dashboard [get]
func (h *StatsHandler) GetDashboard(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.statsService.Dashboard(c.Request.Context(), ownerID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// GetMonthlyTrend returns revenue/profit per calendar month
// @Summary      Monthly trend
// @Description  Settled revenue and profit bucketed by calendar month, oldest first
// @Tags         statistics
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.MonthlyDatapoint}
// @Router       /api/stats/monthly [get]
func (h *StatsHandler) GetMonthlyTrend(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	trend, err := h.statsService.MonthlyTrend(c.Request.Context(), ownerID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, trend))
}

// GetCategoryBreakdown returns net profit per product category
// @Summary      Category breakdown
// @Tags         statistics
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.CategoryProfit}
// @Router       /api/stats/categories [get]
func (h *StatsHandler) GetCategoryBreakdown(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	breakdown, err := h.statsService.CategoryBreakdown(c.Request.Context(), ownerID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, breakdown))
}

// GetStatusSummary returns order counts per status label
// @Summary      Status summary
// @Description  Order counts per status, covering every configured label (including zeroes) plus any stored label no longer in the vocabulary
// @Tags         statistics
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.StatusCount}
// @Router       /api/stats/statuses [get]
func (h *StatsHandler) GetStatusSummary(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	summary, err := h.statsService.StatusSummary(c.Request.Context(), ownerID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}
