package controller

import (
	"masomo_backend/internal/model"
	"masomo_backend/internal/repository"
	"masomo_backend/internal/service"
	"masomo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
	Storage       service.Storage
}

func NewCourseController(courseService *service.CourseService, storage service.Storage) *CourseController {
	return &CourseController{CourseService: courseService, Storage: storage}
}

// List godoc
// @Summary Browse the course catalog
// @Description Published courses only, filterable and paginated
// @Tags courses
// @Produce json
// @Param category query string false "category filter"
// @Param subject query string false "subject filter"
// @Param level query string false "level filter"
// @Param search query string false "title/description search"
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=service.CourseListResult}
// @Router /api/v1/courses [get]
func (ctl *CourseController) List(c *gin.Context) {
	filter := repository.CourseFilter{
		Category: c.Query("category"),
		Subject:  c.Query("subject"),
		Level:    c.Query("level"),
		Search:   c.Query("search"),
	}

	result, err := ctl.CourseService.ListPublished(filter, intQuery(c, "page", 1), intQuery(c, "limit", 20))
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, result)
}

// Get godoc
// @Summary Course detail with lesson list
// @Description Lesson content is hidden unless the viewer is enrolled or staff
// @Tags courses
// @Produce json
// @Param id path int true "course id"
// @Success 200 {object} util.Response{data=service.CourseDetail}
// @Failure 404 {object} util.Response
// @Router /api/v1/courses/{id} [get]
func (ctl *CourseController) Get(c *gin.Context) {
	courseID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var viewerID uint
	var viewerRole model.UserRole
	if claims := util.GetUserFromContext(c); claims != nil {
		viewerID = claims.UserID
		viewerRole = claims.Role
	}

	detail, err := ctl.CourseService.Get(courseID, viewerID, viewerRole)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, detail)
}

// GetLesson godoc
// @Summary Fetch one lesson
// @Description Sequential access: locked until the previous lesson is done
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "lesson id"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 403 {object} util.Response
// @Router /api/v1/lessons/{id} [get]
func (ctl *CourseController) GetLesson(c *gin.Context) {
	lessonID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	lesson, err := ctl.CourseService.GetLesson(lessonID, claims.UserID, claims.Role)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, lesson)
}

// Create godoc
// @Summary Create a course
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CourseRequest true "course fields"
// @Success 201 {object} util.Response{data=model.Course}
// @Router /api/v1/instructor/courses [post]
func (ctl *CourseController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req service.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	course, err := ctl.CourseService.Create(claims.UserID, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Created(c, course)
}

// Update godoc
// @Summary Update a course
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "course id"
// @Param body body service.CourseRequest true "course fields"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/v1/instructor/courses/{id} [put]
func (ctl *CourseController) Update(c *gin.Context) {
	courseID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	var req service.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	course, err := ctl.CourseService.Update(courseID, claims.UserID, claims.Role, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, course)
}

type publishRequest struct {
	Published bool `json:"published"`
}

// SetPublished godoc
// @Summary Publish or unpublish a course
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "course id"
// @Param body body publishRequest true "publish flag"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/v1/instructor/courses/{id}/publish [put]
func (ctl *CourseController) SetPublished(c *gin.Context) {
	courseID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	course, err := ctl.CourseService.SetPublished(courseID, claims.UserID, claims.Role, req.Published)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, course)
}

// ListMine godoc
// @Summary List own courses
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/v1/instructor/courses [get]
func (ctl *CourseController) ListMine(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	courses, err := ctl.CourseService.ListByInstructor(claims.UserID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, courses)
}

// AddLesson godoc
// @Summary Add a lesson to a course
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "course id"
// @Param body body service.LessonRequest true "lesson fields"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Router /api/v1/instructor/courses/{id}/lessons [post]
func (ctl *CourseController) AddLesson(c *gin.Context) {
	courseID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	var req service.LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	lesson, err := ctl.CourseService.AddLesson(courseID, claims.UserID, claims.Role, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Created(c, lesson)
}

// UpdateLesson godoc
// @Summary Update a lesson
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "lesson id"
// @Param body body service.LessonRequest true "lesson fields"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /api/v1/instructor/lessons/{id} [put]
func (ctl *CourseController) UpdateLesson(c *gin.Context) {
	lessonID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	var req service.LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	lesson, err := ctl.CourseService.UpdateLesson(lessonID, claims.UserID, claims.Role, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, lesson)
}

// DeleteLesson godoc
// @Summary Delete a lesson
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Param id path int true "lesson id"
// @Success 200 {object} util.Response
// @Router /api/v1/instructor/lessons/{id} [delete]
func (ctl *CourseController) DeleteLesson(c *gin.Context) {
	lessonID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	if err := ctl.CourseService.DeleteLesson(lessonID, claims.UserID, claims.Role); err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, nil)
}

// UploadLessonVideo godoc
// @Summary Upload a lesson video
// @Description Stores the video and probes its real duration
// @Tags instructor
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "lesson id"
// @Param video formData file true "video file"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /api/v1/instructor/lessons/{id}/video [post]
func (ctl *CourseController) UploadLessonVideo(c *gin.Context) {
	lessonID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	file, err := c.FormFile("video")
	if err != nil {
		util.BadRequest(c, "video file required")
		return
	}

	path, err := ctl.Storage.Save(c.Request.Context(), file, "videos")
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	lesson, err := ctl.CourseService.AttachVideo(lessonID, claims.UserID, claims.Role, path)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, lesson)
}
