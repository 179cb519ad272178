package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	accDto "github.com/gsualumni/alumninet/internal/modules/accomplishment/dto"
	accomplishment "github.com/gsualumni/alumninet/internal/modules/accomplishment/service"
	"github.com/gsualumni/alumninet/pkg/apperror"
	"github.com/gsualumni/alumninet/pkg/ratelimiter"
	"github.com/gsualumni/alumninet/pkg/response"
	"github.com/gsualumni/alumninet/pkg/validator"
)

type AccomplishmentHandler struct {
	service accomplishment.Service
}

func NewAccomplishmentHandler(service accomplishment.Service) *AccomplishmentHandler {
	return &AccomplishmentHandler{service: service}
}

func (h *AccomplishmentHandler) SubmitAccomplishment(c *gin.Context) {
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

	// A maintenance outage must win over field errors, so the gate runs
	// before the payload is parsed.
	if err := h.service.GateSubmission(c.Request.Context(), role); err != nil {
		response.ResponseError(c, err)
		return
	}

	var req accDto.CreateAccomplishmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.NewValidation(validator.FieldErrors(err)))
		return
	}

	resp, err := h.service.SubmitAccomplishment(c.Request.Context(), userID, role, req)
	if err != nil {
		if rateLimitErr, ok := err.(*ratelimiter.RateLimitError); ok {
			c.Header("Retry-After", fmt.Sprintf("%.0f", rateLimitErr.RetryAfter.Seconds()))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": rateLimitErr.Message})
			return
		}
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
