package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/gsualumni/alumninet/internal/entity"
	jobDto "github.com/gsualumni/alumninet/internal/modules/job/dto"
	"github.com/gsualumni/alumninet/pkg/apperror"
)

type stubJobService struct {
	gateErr   error
	submitted bool
}

func (s *stubJobService) GateSubmission(ctx context.Context, role string) error {
	return s.gateErr
}

func (s *stubJobService) SubmitJob(ctx context.Context, userID uuid.UUID, role string, req jobDto.CreateJobRequest) (*jobDto.SubmitJobResponse, error) {
	s.submitted = true
	return &jobDto.SubmitJobResponse{ID: uuid.New(), Title: req.Title}, nil
}

func performSubmit(svc *stubJobService, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set("user_id", uuid.New().String())
	c.Set("user_role", entity.RoleMember)

	NewJobHandler(svc).SubmitJob(c)
	return w
}

func TestSubmitJobMaintenanceWinsOverFieldErrors(t *testing.T) {
	svc := &stubJobService{
		gateErr: fmt.Errorf("job posting is temporarily disabled: %w", apperror.ErrMaintenance),
	}

	// The payload is invalid too; the outage must be reported first.
	w := performSubmit(svc, `{"title":"x"}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.False(t, svc.submitted)
}

func TestSubmitJobInvalidPayloadWhenOpen(t *testing.T) {
	svc := &stubJobService{}

	w := performSubmit(svc, `{"title":"x"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, svc.submitted)
}
