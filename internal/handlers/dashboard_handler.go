package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"painel/internal/services"
)

// DashboardHandler serves the goal overview and the daily summary.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard handles the goals overview
// @Summary     Goals dashboard
// @Description Month total and per-category progress. Observing a reached goal for the first time starts its celebration.
// @Tags        dashboard
// @Produce     json
// @Success     200 {object} services.Dashboard "Dashboard"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetToday handles the daily summary
// @Summary     Today's sales
// @Tags        dashboard
// @Produce     json
// @Success     200 {object} services.TodaySummary "Today"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/today [get]
func (h *DashboardHandler) GetToday(c *gin.Context) {
	today, err := h.dashboardService.GetToday(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, today)
}
