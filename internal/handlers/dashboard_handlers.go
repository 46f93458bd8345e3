package handlers

import (
	"net/http"

	"sweetshop/internal/common"
	"sweetshop/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandlers serves the read-only aggregate endpoints.
type DashboardHandlers struct {
	dashboardService services.DashboardServiceInterface
}

func NewDashboardHandlers(dashboardService services.DashboardServiceInterface) *DashboardHandlers {
	return &DashboardHandlers{dashboardService: dashboardService}
}

// GetStats handles GET /dashboard/stats.
func (h *DashboardHandlers) GetStats(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "User ID required")
	}

	stats, err := h.dashboardService.GetStats(ctx, userID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
