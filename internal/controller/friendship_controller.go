package controller

import (
	"masomo_backend/internal/service"
	"masomo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FriendshipController struct {
	FriendshipService *service.FriendshipService
}

func NewFriendshipController(friendshipService *service.FriendshipService) *FriendshipController {
	return &FriendshipController{FriendshipService: friendshipService}
}

type friendRequestBody struct {
	ReceiverID uint   `json:"receiverId" binding:"required"`
	Message    string `json:"message" binding:"max=255"`
}

// SendRequest godoc
// @Summary Send a friend request
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body friendRequestBody true "receiver and optional message"
// @Success 201 {object} util.Response{data=model.FriendRequest}
// @Failure 409 {object} util.Response
// @Router /api/v1/friends/requests [post]
func (ctl *FriendshipController) SendRequest(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req friendRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	request, err := ctl.FriendshipService.SendRequest(claims.UserID, req.ReceiverID, req.Message)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Created(c, request)
}

// PendingRequests godoc
// @Summary List incoming pending friend requests
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.FriendRequest}
// @Router /api/v1/friends/requests [get]
func (ctl *FriendshipController) PendingRequests(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	requests, err := ctl.FriendshipService.ListPendingRequests(claims.UserID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, requests)
}

// Accept godoc
// @Summary Accept a friend request
// @Description Both users become friends and earn XP
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param id path string true "request id"
// @Success 200 {object} util.Response
// @Router /api/v1/friends/requests/{id}/accept [put]
func (ctl *FriendshipController) Accept(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	if err := ctl.FriendshipService.AcceptRequest(c.Param("id"), claims.UserID); err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, nil)
}

// Reject godoc
// @Summary Reject a friend request
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param id path string true "request id"
// @Success 200 {object} util.Response
// @Router /api/v1/friends/requests/{id}/reject [put]
func (ctl *FriendshipController) Reject(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	if err := ctl.FriendshipService.RejectRequest(c.Param("id"), claims.UserID); err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, nil)
}

// List godoc
// @Summary List friends
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param search query string false "name/email search"
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/v1/friends [get]
func (ctl *FriendshipController) List(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	friends, err := ctl.FriendshipService.ListFriends(claims.UserID, c.Query("search"))
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, friends)
}

// Unfriend godoc
// @Summary Remove a friend
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param id path int true "friend user id"
// @Success 200 {object} util.Response
// @Router /api/v1/friends/{id} [delete]
func (ctl *FriendshipController) Unfriend(c *gin.Context) {
	friendID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	if err := ctl.FriendshipService.Unfriend(claims.UserID, friendID); err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, nil)
}

// Activity godoc
// @Summary Friend activity feed
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.FriendActivity}
// @Router /api/v1/friends/activity [get]
func (ctl *FriendshipController) Activity(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	feed, err := ctl.FriendshipService.FriendActivityFeed(claims.UserID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, feed)
}
