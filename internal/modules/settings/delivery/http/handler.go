package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gsualumni/alumninet/internal/modules/settings"
	settingsService "github.com/gsualumni/alumninet/internal/modules/settings/service"
	"github.com/gsualumni/alumninet/pkg/response"
)

type SettingsHandler struct {
	service settingsService.Service
}

func NewSettingsHandler(service settingsService.Service) *SettingsHandler {
	return &SettingsHandler{service: service}
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	role, err := response.GetUserRole(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	current, err := h.service.Get(c.Request.Context(), role)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": current})
}

func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	role, err := response.GetUserRole(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	// Patches are decoded leniently: wrongly typed or unknown fields are
	// dropped rather than rejected, so a bad field never blocks the rest.
	var doc map[string]interface{}
	if err := c.ShouldBindJSON(&doc); err != nil {
		doc = nil
	}

	updated, err := h.service.Update(c.Request.Context(), role, settings.PatchFromDoc(doc))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": updated})
}
