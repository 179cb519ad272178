package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	modDto "github.com/gsualumni/alumninet/internal/modules/moderation/dto"
	moderation "github.com/gsualumni/alumninet/internal/modules/moderation/service"
	"github.com/gsualumni/alumninet/pkg/apperror"
	"github.com/gsualumni/alumninet/pkg/response"
)

type ModerationHandler struct {
	service moderation.Service
}

func NewModerationHandler(service moderation.Service) *ModerationHandler {
	return &ModerationHandler{service: service}
}

func (h *ModerationHandler) ListPendingJobs(c *gin.Context) {
	role, err := response.GetUserRole(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	resp, err := h.service.ListPendingJobs(c.Request.Context(), role, page)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ModerationHandler) ListPendingAccomplishments(c *gin.Context) {
	role, err := response.GetUserRole(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	resp, err := h.service.ListPendingAccomplishments(c.Request.Context(), role, page)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ModerationHandler) ApproveJob(c *gin.Context) {
	h.moderate(c, h.service.ApproveJob)
}

func (h *ModerationHandler) RejectJob(c *gin.Context) {
	h.moderate(c, h.service.RejectJob)
}

func (h *ModerationHandler) ApproveAccomplishment(c *gin.Context) {
	h.moderate(c, h.service.ApproveAccomplishment)
}

func (h *ModerationHandler) RejectAccomplishment(c *gin.Context) {
	h.moderate(c, h.service.RejectAccomplishment)
}

type moderateFn func(ctx context.Context, moderatorID uuid.UUID, role string, id uuid.UUID) (*modDto.ModerationResult, error)

func (h *ModerationHandler) moderate(c *gin.Context, fn moderateFn) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	role, err := response.GetUserRole(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return
	}

	result, err := fn(c.Request.Context(), userID, role, id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
