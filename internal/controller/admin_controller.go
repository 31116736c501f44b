package controller

import (
	"masomo_backend/internal/model"
	"masomo_backend/internal/service"
	"masomo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	UserService        *service.UserService
	CourseService      *service.CourseService
	AchievementService *service.AchievementService
	DashboardService   *service.DashboardService
}

func NewAdminController(
	userService *service.UserService,
	courseService *service.CourseService,
	achievementService *service.AchievementService,
	dashboardService *service.DashboardService,
) *AdminController {
	return &AdminController{
		UserService:        userService,
		CourseService:      courseService,
		AchievementService: achievementService,
		DashboardService:   dashboardService,
	}
}

// Stats godoc
// @Summary Platform statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.AdminStats}
// @Router /api/v1/admin/stats [get]
func (ctl *AdminController) Stats(c *gin.Context) {
	stats, err := ctl.DashboardService.ForAdmin()
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, stats)
}

// ListUsers godoc
// @Summary List accounts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "name/email search"
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=service.UserListResult}
// @Router /api/v1/admin/users [get]
func (ctl *AdminController) ListUsers(c *gin.Context) {
	result, err := ctl.UserService.ListUsers(c.Query("search"), intQuery(c, "page", 1), intQuery(c, "limit", 20))
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, result)
}

type disableRequest struct {
	Disabled bool `json:"disabled"`
}

// SetDisabled godoc
// @Summary Suspend or restore an account
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "user id"
// @Param body body disableRequest true "disabled flag"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/v1/admin/users/{id}/disable [put]
func (ctl *AdminController) SetDisabled(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req disableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, err := ctl.UserService.SetDisabled(userID, req.Disabled)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, user)
}

type roleRequest struct {
	Role string `json:"role" binding:"required,oneof=student instructor admin"`
}

// SetRole godoc
// @Summary Change an account role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "user id"
// @Param body body roleRequest true "new role"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/v1/admin/users/{id}/role [put]
func (ctl *AdminController) SetRole(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, err := ctl.UserService.SetRole(userID, model.UserRole(req.Role))
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, user)
}

// ResetCourse godoc
// @Summary Wipe all enrollments and progress of a course
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/courses/{id}/reset [post]
func (ctl *AdminController) ResetCourse(c *gin.Context) {
	courseID, ok := idParam(c, "id")
	if !ok {
		return
	}

	removed, err := ctl.CourseService.Reset(courseID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, gin.H{"removedEnrollments": removed})
}

// ListAchievementDefinitions godoc
// @Summary List achievement definitions
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.AchievementDefinition}
// @Router /api/v1/admin/achievements [get]
func (ctl *AdminController) ListAchievementDefinitions(c *gin.Context) {
	defs, err := ctl.AchievementService.ListDefinitions()
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, defs)
}

// CreateAchievementDefinition godoc
// @Summary Create an achievement definition
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.AchievementDefinitionRequest true "definition fields"
// @Success 201 {object} util.Response{data=model.AchievementDefinition}
// @Router /api/v1/admin/achievements [post]
func (ctl *AdminController) CreateAchievementDefinition(c *gin.Context) {
	var req service.AchievementDefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	def, err := ctl.AchievementService.CreateDefinition(req)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Created(c, def)
}

// UpdateAchievementDefinition godoc
// @Summary Edit an achievement definition
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "definition id"
// @Param body body service.AchievementDefinitionRequest true "definition fields"
// @Success 200 {object} util.Response{data=model.AchievementDefinition}
// @Router /api/v1/admin/achievements/{id} [put]
func (ctl *AdminController) UpdateAchievementDefinition(c *gin.Context) {
	defID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req service.AchievementDefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	def, err := ctl.AchievementService.UpdateDefinition(defID, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, def)
}

type activeRequest struct {
	Active bool `json:"active"`
}

// SetAchievementActive godoc
// @Summary Enable or disable an achievement definition
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "definition id"
// @Param body body activeRequest true "active flag"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/achievements/{id}/active [put]
func (ctl *AdminController) SetAchievementActive(c *gin.Context) {
	defID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req activeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if err := ctl.AchievementService.SetDefinitionActive(defID, req.Active); err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, nil)
}
