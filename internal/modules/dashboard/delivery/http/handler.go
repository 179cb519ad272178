package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	dashboard "github.com/gsualumni/alumninet/internal/modules/dashboard/service"
	"github.com/gsualumni/alumninet/pkg/response"
)

type DashboardHandler struct {
	service dashboard.Service
}

func NewDashboardHandler(service dashboard.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) AdminOverview(c *gin.Context) {
	role, err := response.GetUserRole(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resp, err := h.service.AdminOverview(c.Request.Context(), role)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *DashboardHandler) MemberOverview(c *gin.Context) {
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

	resp, err := h.service.MemberOverview(c.Request.Context(), userID, role)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
