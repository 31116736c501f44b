package controller

import (
	"time"

	"masomo_backend/internal/service"
	"masomo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EventController struct {
	EventService *service.EventService
}

func NewEventController(eventService *service.EventService) *EventController {
	return &EventController{EventService: eventService}
}

// Create godoc
// @Summary Create a calendar event
// @Description Invited participants must be friends of the creator
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.EventRequest true "event fields"
// @Success 201 {object} util.Response{data=model.Event}
// @Router /api/v1/events [post]
func (ctl *EventController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req service.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	event, err := ctl.EventService.Create(claims.UserID, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Created(c, event)
}

// List godoc
// @Summary Calendar events for a month
// @Description month is YYYY-MM; defaults to the current month
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param month query string false "month as YYYY-MM"
// @Success 200 {object} util.Response{data=[]model.Event}
// @Router /api/v1/events [get]
func (ctl *EventController) List(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	anchor := time.Now()
	if month := c.Query("month"); month != "" {
		parsed, err := time.Parse("2006-01", month)
		if err != nil {
			util.BadRequest(c, "month must be YYYY-MM")
			return
		}
		anchor = parsed
	}

	events, err := ctl.EventService.ListMonth(claims.UserID, anchor)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, events)
}

// Upcoming godoc
// @Summary Next upcoming events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param limit query int false "entries to return, default 5"
// @Success 200 {object} util.Response{data=[]model.Event}
// @Router /api/v1/events/upcoming [get]
func (ctl *EventController) Upcoming(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	events, err := ctl.EventService.Upcoming(claims.UserID, intQuery(c, "limit", 5))
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, events)
}

// Update godoc
// @Summary Update an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "event id"
// @Param body body service.EventRequest true "event fields"
// @Success 200 {object} util.Response{data=model.Event}
// @Router /api/v1/events/{id} [put]
func (ctl *EventController) Update(c *gin.Context) {
	eventID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	var req service.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	event, err := ctl.EventService.Update(eventID, claims.UserID, claims.Role, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, event)
}

// Delete godoc
// @Summary Delete an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "event id"
// @Success 200 {object} util.Response
// @Router /api/v1/events/{id} [delete]
func (ctl *EventController) Delete(c *gin.Context) {
	eventID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	if err := ctl.EventService.Delete(eventID, claims.UserID, claims.Role); err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, nil)
}

// Join godoc
// @Summary Join a friend's event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "event id"
// @Success 200 {object} util.Response
// @Router /api/v1/events/{id}/join [post]
func (ctl *EventController) Join(c *gin.Context) {
	eventID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	if err := ctl.EventService.Join(eventID, claims.UserID); err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, nil)
}

// Leave godoc
// @Summary Leave an event you were invited to
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "event id"
// @Success 200 {object} util.Response
// @Router /api/v1/events/{id}/leave [delete]
func (ctl *EventController) Leave(c *gin.Context) {
	eventID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(c)

	if err := ctl.EventService.Leave(eventID, claims.UserID); err != nil {
		serviceError(c, err)
		return
	}
	util.Success(c, nil)
}
