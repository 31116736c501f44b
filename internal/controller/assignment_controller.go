package controller

import (
	"masomo_backend/internal/service"
	"masomo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
}

func NewAssignmentController(assignmentService *service.AssignmentService) *AssignmentController {
	return &AssignmentController{AssignmentService: assignmentService}
}

// List godoc
// @Summary List assignments across enrolled courses
// @Description Each entry carries a derived status: pending, overdue, submitted, graded or late
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.AssignmentView}
// @Router /api/v1/assignments [get]
func (ctl *AssignmentController) List(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	views, err := ctl.AssignmentService.ListForUser(claims.UserID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, views)
}

// ListForCourse godoc
// @Summary List one course's published assignments
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response{data=[]service.AssignmentView}
// @Router /api/v1/courses/{id}/assignments [get]
func (ctl *AssignmentController) ListForCourse(c *gin.Context) {
	courseID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	views, err := ctl.AssignmentService.ListForCourse(claims.UserID, courseID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, views)
}

// Get godoc
// @Summary Assignment detail with questions
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "assignment id"
// @Success 200 {object} util.Response{data=service.AssignmentDetail}
// @Router /api/v1/assignments/{id} [get]
func (ctl *AssignmentController) Get(c *gin.Context) {
	assignmentID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	detail, err := ctl.AssignmentService.Get(claims.UserID, assignmentID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, detail)
}

// Submit godoc
// @Summary Submit answers for grading
// @Description Grades immediately; one submission per assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "assignment id"
// @Param body body service.SubmitRequest true "answers keyed by question id"
// @Success 201 {object} util.Response{data=service.SubmissionResult}
// @Failure 409 {object} util.Response
// @Router /api/v1/assignments/{id}/submit [post]
func (ctl *AssignmentController) Submit(c *gin.Context) {
	assignmentID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	var req service.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := ctl.AssignmentService.Submit(claims.UserID, assignmentID, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Created(c, result)
}

// Create godoc
// @Summary Create an assignment
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.AssignmentRequest true "assignment fields"
// @Success 201 {object} util.Response{data=model.Assignment}
// @Router /api/v1/instructor/assignments [post]
func (ctl *AssignmentController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req service.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	assignment, err := ctl.AssignmentService.Create(claims.UserID, claims.Role, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Created(c, assignment)
}

// AddQuestion godoc
// @Summary Add a question to an assignment
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "assignment id"
// @Param body body service.QuestionRequest true "question fields"
// @Success 201 {object} util.Response{data=model.AssignmentQuestion}
// @Router /api/v1/instructor/assignments/{id}/questions [post]
func (ctl *AssignmentController) AddQuestion(c *gin.Context) {
	assignmentID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	var req service.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	q, err := ctl.AssignmentService.AddQuestion(assignmentID, claims.UserID, claims.Role, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Created(c, q)
}

// Publish godoc
// @Summary Publish an assignment
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Param id path int true "assignment id"
// @Success 200 {object} util.Response{data=model.Assignment}
// @Router /api/v1/instructor/assignments/{id}/publish [put]
func (ctl *AssignmentController) Publish(c *gin.Context) {
	assignmentID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	assignment, err := ctl.AssignmentService.Publish(assignmentID, claims.UserID, claims.Role)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, assignment)
}

// ListSubmissions godoc
// @Summary Review submissions for an assignment
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Param id path int true "assignment id"
// @Success 200 {object} util.Response{data=[]model.Submission}
// @Router /api/v1/instructor/assignments/{id}/submissions [get]
func (ctl *AssignmentController) ListSubmissions(c *gin.Context) {
	assignmentID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	subs, err := ctl.AssignmentService.ListSubmissions(assignmentID, claims.UserID, claims.Role)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, subs)
}
