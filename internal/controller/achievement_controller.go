package controller

import (
	"masomo_backend/internal/service"
	"masomo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AchievementController struct {
	AchievementService  *service.AchievementService
	GamificationService *service.GamificationService
}

func NewAchievementController(
	achievementService *service.AchievementService,
	gamificationService *service.GamificationService,
) *AchievementController {
	return &AchievementController{
		AchievementService:  achievementService,
		GamificationService: gamificationService,
	}
}

// Mine godoc
// @Summary Own achievements, XP, level and leaderboard
// @Tags achievements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.UserAchievements}
// @Router /api/v1/achievements [get]
func (ctl *AchievementController) Mine(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	achievements, err := ctl.AchievementService.GetUserAchievements(claims.UserID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, achievements)
}

// Leaderboard godoc
// @Summary XP leaderboard
// @Tags achievements
// @Produce json
// @Param limit query int false "entries to return, default 10"
// @Success 200 {object} util.Response{data=[]service.LeaderboardEntry}
// @Router /api/v1/leaderboard [get]
func (ctl *AchievementController) Leaderboard(c *gin.Context) {
	entries, err := ctl.GamificationService.GetLeaderboard(intQuery(c, "limit", 10))
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, entries)
}
