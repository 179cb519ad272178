package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	eventDto "github.com/gsualumni/alumninet/internal/modules/event/dto"
	event "github.com/gsualumni/alumninet/internal/modules/event/service"
	"github.com/gsualumni/alumninet/pkg/apperror"
	"github.com/gsualumni/alumninet/pkg/response"
	"github.com/gsualumni/alumninet/pkg/validator"
)

type EventHandler struct {
	service event.Service
}

func NewEventHandler(service event.Service) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	userID, role, ok := h.identity(c)
	if !ok {
		return
	}

	var filter eventDto.ListEventsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return
	}

	resp, err := h.service.ListUpcoming(c.Request.Context(), userID, role, filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) RSVP(c *gin.Context) {
	userID, role, ok := h.identity(c)
	if !ok {
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return
	}

	resp, err := h.service.RSVP(c.Request.Context(), userID, role, eventID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *EventHandler) CancelRSVP(c *gin.Context) {
	userID, role, ok := h.identity(c)
	if !ok {
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return
	}

	resp, err := h.service.CancelRSVP(c.Request.Context(), userID, role, eventID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, role, ok := h.identity(c)
	if !ok {
		return
	}

	var req eventDto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.NewValidation(validator.FieldErrors(err)))
		return
	}

	createdEvent, err := h.service.CreateEvent(c.Request.Context(), userID, role, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createdEvent)
}

func (h *EventHandler) identity(c *gin.Context) (uuid.UUID, string, bool) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return uuid.Nil, "", false
	}

	role, err := response.GetUserRole(c)
	if err != nil {
		response.ResponseError(c, err)
		return uuid.Nil, "", false
	}

	return userID, role, true
}
