package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hostelsphere/internal/app/services"
	"github.com/yigit/hostelsphere/internal/middleware"
)

// DashboardController serves the admin dashboard
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// Stats returns occupancy and workload figures
// @Summary Dashboard statistics
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStats}
// @Router /dashboard [get]
func (c *DashboardController) Stats(ctx *gin.Context) {
	stats, err := c.dashboardService.Stats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, stats)
}
