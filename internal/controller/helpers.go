package controller

import (
	"net/http"
	"strconv"

	"masomo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// serviceError maps the service-layer sentinel errors onto HTTP statuses.
// Anything unrecognized is logged and reported as a 500.
func serviceError(c *gin.Context, err error) {
	switch err {
	case util.ErrUserNotFound, util.ErrCourseNotFound, util.ErrLessonNotFound,
		util.ErrAssignmentNotFound, util.ErrTestNotFound, util.ErrEventNotFound,
		util.ErrRequestNotFound, util.ErrAchievementNotFound:
		util.NotFound(c)
	case util.ErrEmailRegistered, util.ErrAlreadyEnrolled, util.ErrAlreadySubmitted,
		util.ErrTestAlreadyTaken, util.ErrAlreadyFriends, util.ErrRequestHandled,
		util.ErrAlreadyCheckedIn:
		util.Conflict(c, err.Error())
	case util.ErrInvalidCredentials:
		util.Unauthorized(c)
	case util.ErrPermissionDenied, util.ErrNotEnrolled, util.ErrLessonLocked,
		util.ErrCourseNotPublished, util.ErrNotPublished:
		util.Error(c, http.StatusForbidden, err.Error())
	case util.ErrInvalidFriendTarget, util.ErrInvalidEventTime:
		util.BadRequest(c, err.Error())
	default:
		util.LogInternalError(c, err)
	}
}

// idParam parses a numeric path parameter, replying 400 on garbage.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		util.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func intQuery(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return v
}
