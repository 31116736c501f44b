package controller

import (
	"masomo_backend/internal/service"
	"masomo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	NotificationService *service.NotificationService
}

func NewNotificationController(notificationService *service.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

// List godoc
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=service.NotificationList}
// @Router /api/v1/notifications [get]
func (ctl *NotificationController) List(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	list, err := ctl.NotificationService.List(claims.UserID, intQuery(c, "page", 1), intQuery(c, "limit", 20))
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, list)
}

// UnreadCount godoc
// @Summary Unread notification count
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/v1/notifications/unread [get]
func (ctl *NotificationController) UnreadCount(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	count, err := ctl.NotificationService.UnreadCount(claims.UserID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, gin.H{"unread": count})
}

// MarkRead godoc
// @Summary Mark one notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "notification id"
// @Success 200 {object} util.Response
// @Router /api/v1/notifications/{id}/read [put]
func (ctl *NotificationController) MarkRead(c *gin.Context) {
	notificationID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	if err := ctl.NotificationService.MarkRead(claims.UserID, notificationID); err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, nil)
}

// MarkAllRead godoc
// @Summary Mark every notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/v1/notifications/read-all [post]
func (ctl *NotificationController) MarkAllRead(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	if err := ctl.NotificationService.MarkAllRead(claims.UserID); err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, nil)
}
