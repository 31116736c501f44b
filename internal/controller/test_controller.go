package controller

import (
	"masomo_backend/internal/service"
	"masomo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	TestService *service.TestService
}

func NewTestController(testService *service.TestService) *TestController {
	return &TestController{TestService: testService}
}

// List godoc
// @Summary List tests across enrolled courses
// @Tags tests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.TestView}
// @Router /api/v1/tests [get]
func (ctl *TestController) List(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	views, err := ctl.TestService.ListForUser(claims.UserID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, views)
}

// ListForCourse godoc
// @Summary List one course's published tests
// @Tags tests
// @Produce json
// @Security BearerAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response{data=[]service.TestView}
// @Router /api/v1/courses/{id}/tests [get]
func (ctl *TestController) ListForCourse(c *gin.Context) {
	courseID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	views, err := ctl.TestService.ListForCourse(claims.UserID, courseID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, views)
}

// Get godoc
// @Summary Test detail with questions
// @Tags tests
// @Produce json
// @Security BearerAuth
// @Param id path int true "test id"
// @Success 200 {object} util.Response{data=service.TestDetail}
// @Router /api/v1/tests/{id} [get]
func (ctl *TestController) Get(c *gin.Context) {
	testID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	detail, err := ctl.TestService.Get(claims.UserID, testID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, detail)
}

// Submit godoc
// @Summary Submit a test attempt
// @Description Single attempt per test; XP scales with the score
// @Tags tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "test id"
// @Param body body service.TestSubmitRequest true "answers and start time"
// @Success 201 {object} util.Response{data=service.TestResult}
// @Failure 409 {object} util.Response
// @Router /api/v1/tests/{id}/submit [post]
func (ctl *TestController) Submit(c *gin.Context) {
	testID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	var req service.TestSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := ctl.TestService.Submit(claims.UserID, testID, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Created(c, result)
}

// Create godoc
// @Summary Create a test
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.TestRequest true "test fields"
// @Success 201 {object} util.Response{data=model.Test}
// @Router /api/v1/instructor/tests [post]
func (ctl *TestController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req service.TestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	test, err := ctl.TestService.Create(claims.UserID, claims.Role, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Created(c, test)
}

// AddQuestion godoc
// @Summary Add a question to a test
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "test id"
// @Param body body service.QuestionRequest true "question fields"
// @Success 201 {object} util.Response{data=model.TestQuestion}
// @Router /api/v1/instructor/tests/{id}/questions [post]
func (ctl *TestController) AddQuestion(c *gin.Context) {
	testID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	var req service.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	q, err := ctl.TestService.AddQuestion(testID, claims.UserID, claims.Role, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Created(c, q)
}

// Publish godoc
// @Summary Publish a test
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Param id path int true "test id"
// @Success 200 {object} util.Response{data=model.Test}
// @Router /api/v1/instructor/tests/{id}/publish [put]
func (ctl *TestController) Publish(c *gin.Context) {
	testID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	test, err := ctl.TestService.Publish(testID, claims.UserID, claims.Role)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, test)
}
