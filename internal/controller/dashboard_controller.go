package controller

import (
	"masomo_backend/internal/service"
	"masomo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// Get godoc
// @Summary Student dashboard
// @Description Profile, level, enrollments, pending work, events and leaderboard in one payload
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.Dashboard}
// @Router /api/v1/dashboard [get]
func (ctl *DashboardController) Get(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	dashboard, err := ctl.DashboardService.ForUser(claims.UserID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, dashboard)
}
