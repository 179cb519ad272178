package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	adminDto "github.com/gsualumni/alumninet/internal/modules/admin/dto"
	admin "github.com/gsualumni/alumninet/internal/modules/admin/service"
	"github.com/gsualumni/alumninet/pkg/apperror"
	"github.com/gsualumni/alumninet/pkg/response"
	"github.com/gsualumni/alumninet/pkg/validator"
)

type AdminHandler struct {
	service admin.Service
}

func NewAdminHandler(service admin.Service) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	role, err := response.GetUserRole(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	resp, err := h.service.ListUsers(c.Request.Context(), role, page, limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	actorID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	actorRole, err := response.GetUserRole(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return
	}

	var req adminDto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.NewValidation(validator.FieldErrors(err)))
		return
	}

	resp, err := h.service.UpdateUserRole(c.Request.Context(), actorID, actorRole, targetID, req.Role)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
