package controller

import (
	"masomo_backend/internal/service"
	"masomo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// Record godoc
// @Summary Report study progress
// @Description Upserts a progress record; completing a lesson may complete the course
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ProgressUpdateRequest true "progress report"
// @Success 200 {object} util.Response{data=model.ProgressRecord}
// @Failure 403 {object} util.Response
// @Router /api/v1/progress [post]
func (ctl *ProgressController) Record(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req service.ProgressUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	record, err := ctl.ProgressService.Record(claims.UserID, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, record)
}

// GetCourseProgress godoc
// @Summary Progress for one course
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response{data=service.CourseProgress}
// @Router /api/v1/courses/{id}/progress [get]
func (ctl *ProgressController) GetCourseProgress(c *gin.Context) {
	courseID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	progress, err := ctl.ProgressService.GetCourseProgress(claims.UserID, courseID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, progress)
}
