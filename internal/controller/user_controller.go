package controller

import (
	"masomo_backend/internal/service"
	"masomo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
	Storage     service.Storage
}

func NewUserController(userService *service.UserService, storage service.Storage) *UserController {
	return &UserController{UserService: userService, Storage: storage}
}

// GetProfile godoc
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.Profile}
// @Router /api/v1/users/me [get]
func (ctl *UserController) GetProfile(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	profile, err := ctl.UserService.GetProfile(claims.UserID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, profile)
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ProfileUpdateRequest true "profile fields"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/v1/users/me [put]
func (ctl *UserController) UpdateProfile(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req service.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, err := ctl.UserService.UpdateProfile(claims.UserID, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, user)
}

// UploadAvatar godoc
// @Summary Upload a profile picture
// @Tags users
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "image file"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/v1/users/me/avatar [post]
func (ctl *UserController) UploadAvatar(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		util.BadRequest(c, "avatar file required")
		return
	}
	const maxAvatarSize = 5 << 20
	if file.Size > maxAvatarSize {
		util.BadRequest(c, "avatar exceeds 5MB")
		return
	}

	path, err := ctl.Storage.Save(c.Request.Context(), file, "avatars")
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	user, err := ctl.UserService.UpdateProfile(claims.UserID, service.ProfileUpdateRequest{Avatar: path})
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, user)
}

// GetPreferences godoc
// @Summary Get onboarding preferences
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.UserPreferences}
// @Router /api/v1/users/me/preferences [get]
func (ctl *UserController) GetPreferences(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	prefs, err := ctl.UserService.GetPreferences(claims.UserID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, prefs)
}

// SavePreferences godoc
// @Summary Save onboarding preferences
// @Description Stores the questionnaire and completes onboarding
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.PreferencesRequest true "preferences"
// @Success 200 {object} util.Response{data=model.UserPreferences}
// @Router /api/v1/users/me/preferences [put]
func (ctl *UserController) SavePreferences(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req service.PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	prefs, err := ctl.UserService.SavePreferences(claims.UserID, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, prefs)
}

// Checkin godoc
// @Summary Daily study check-in
// @Description One check-in per calendar day; extends or resets the streak
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.CheckinResult}
// @Failure 409 {object} util.Response
// @Router /api/v1/users/me/checkin [post]
func (ctl *UserController) Checkin(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	result, err := ctl.UserService.Checkin(claims.UserID)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, result)
}
