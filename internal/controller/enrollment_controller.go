package controller

import (
	"masomo_backend/internal/service"
	"masomo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

// Enroll godoc
// @Summary Enroll in a course
// @Description Creates the enrollment and awards enrollment XP
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "course id"
// @Success 201 {object} util.Response{data=model.Enrollment}
// @Failure 409 {object} util.Response
// @Router /api/v1/courses/{id}/enroll [post]
func (ctl *EnrollmentController) Enroll(c *gin.Context) {
	courseID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	enrollment, err := ctl.EnrollmentService.Enroll(claims.UserID, courseID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Created(c, enrollment)
}

// List godoc
// @Summary List own enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Enrollment}
// @Router /api/v1/enrollments [get]
func (ctl *EnrollmentController) List(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	enrollments, err := ctl.EnrollmentService.ListForUser(claims.UserID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, enrollments)
}

// Get godoc
// @Summary Get one enrollment
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response{data=model.Enrollment}
// @Router /api/v1/courses/{id}/enrollment [get]
func (ctl *EnrollmentController) Get(c *gin.Context) {
	courseID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	enrollment, err := ctl.EnrollmentService.Get(claims.UserID, courseID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, enrollment)
}
