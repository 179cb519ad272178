package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	jobDto "github.com/gsualumni/alumninet/internal/modules/job/dto"
	job "github.com/gsualumni/alumninet/internal/modules/job/service"
	"github.com/gsualumni/alumninet/pkg/apperror"
	"github.com/gsualumni/alumninet/pkg/ratelimiter"
	"github.com/gsualumni/alumninet/pkg/response"
	"github.com/gsualumni/alumninet/pkg/validator"
)

type JobHandler struct {
	service job.Service
}

func NewJobHandler(service job.Service) *JobHandler {
	return &JobHandler{service: service}
}

func (h *JobHandler) SubmitJob(c *gin.Context) {
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

	var req jobDto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.NewValidation(validator.FieldErrors(err)))
		return
	}

	resp, err := h.service.SubmitJob(c.Request.Context(), userID, role, req)
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
