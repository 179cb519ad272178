package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	alumniDto "github.com/gsualumni/alumninet/internal/modules/alumni/dto"
	alumni "github.com/gsualumni/alumninet/internal/modules/alumni/service"
	"github.com/gsualumni/alumninet/pkg/response"
)

type AlumniHandler struct {
	service alumni.Service
}

func NewAlumniHandler(service alumni.Service) *AlumniHandler {
	return &AlumniHandler{service: service}
}

func (h *AlumniHandler) SearchAlumni(c *gin.Context) {
	var filter alumniDto.SearchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ResponseError(c, err)
		return
	}

	role, err := response.GetUserRole(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	result, err := h.service.Search(c.Request.Context(), role, filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
