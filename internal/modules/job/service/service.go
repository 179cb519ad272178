package job

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/gsualumni/alumninet/internal/entity"
	alumni "github.com/gsualumni/alumninet/internal/modules/alumni/service"
	jobDto "github.com/gsualumni/alumninet/internal/modules/job/dto"
	repo "github.com/gsualumni/alumninet/internal/modules/job/repository"
	"github.com/gsualumni/alumninet/internal/modules/settings"
	"github.com/gsualumni/alumninet/internal/policy"
	"github.com/gsualumni/alumninet/pkg/apperror"
	"github.com/gsualumni/alumninet/pkg/ratelimiter"
	"github.com/gsualumni/alumninet/pkg/sanitize"
)

const rateLimitAction = "submit_job"

type Service interface {
	GateSubmission(ctx context.Context, role string) error
	SubmitJob(ctx context.Context, userID uuid.UUID, role string, req jobDto.CreateJobRequest) (*jobDto.SubmitJobResponse, error)
}

type service struct {
	jobRepo     repo.Repository
	alumniSvc   alumni.Service
	settings    settings.Provider
	redisClient *redis.Client
	rateWindow  time.Duration
}

func NewService(jobRepo repo.Repository, alumniSvc alumni.Service, provider settings.Provider, redisClient *redis.Client, rateWindow time.Duration) Service {
	return &service{
		jobRepo:     jobRepo,
		alumniSvc:   alumniSvc,
		settings:    provider,
		redisClient: redisClient,
		rateWindow:  rateWindow,
	}
}

// GateSubmission checks role and maintenance state ahead of payload
// validation, so an outage is reported before any field errors.
func (s *service) GateSubmission(ctx context.Context, role string) error {
	if !policy.Allowed(role, policy.ActionSubmitJob) {
		return apperror.ErrForbidden
	}

	current, err := s.settings.Current(ctx)
	if err != nil {
		return err
	}

	// Maintenance gates submission; admins pass through.
	if current.MaintenanceMode && role != entity.RoleAdmin {
		return fmt.Errorf("job posting is temporarily disabled: %w", apperror.ErrMaintenance)
	}
	return nil
}

func (s *service) SubmitJob(ctx context.Context, userID uuid.UUID, role string, req jobDto.CreateJobRequest) (*jobDto.SubmitJobResponse, error) {
	if err := s.GateSubmission(ctx, role); err != nil {
		return nil, err
	}

	current, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	isAdmin := role == entity.RoleAdmin

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return nil, err
	}

	allowed, err := ratelimiter.CheckAndSet(ctx, s.redisClient, userID, rateLimitAction, s.rateWindow)
	if err != nil {
		return nil, err
	}
	if !allowed {
		ttl, _ := ratelimiter.TTL(ctx, s.redisClient, userID, rateLimitAction)
		return nil, &ratelimiter.RateLimitError{
			Message:    "you are posting jobs too quickly, try again shortly",
			RetryAfter: ttl,
		}
	}

	created := false
	defer func() {
		if !created {
			_ = ratelimiter.Clear(ctx, s.redisClient, userID, rateLimitAction)
		}
	}()

	profile, err := s.alumniSvc.EnsureProfile(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	// Approval state is decided at submission time from the current policy.
	requireApproval := current.RequireApprovalForJobs
	isApproved := !requireApproval
	if isAdmin {
		isApproved = current.AdminAutoApproveOwnContent || !requireApproval
	}

	var approvedBy *uuid.UUID
	if isApproved && isAdmin {
		approvedBy = &userID
	}

	job := &entity.Job{
		PosterID:     profile.ID,
		Company:      trimPtr(req.Company),
		Title:        strings.TrimSpace(req.Title),
		Description:  sanitize.UGC(req.Description),
		Requirements: sanitize.UGCPtr(req.Requirements),
		Location:     trimPtr(req.Location),
		SalaryRange:  trimPtr(req.SalaryRange),
		Deadline:     deadline,
		IsApproved:   isApproved,
		IsActive:     true,
		ApprovedByID: approvedBy,
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	created = true

	return &jobDto.SubmitJobResponse{
		ID:      job.ID,
		Title:   job.Title,
		Message: submitMessage(isApproved, isAdmin),
	}, nil
}

func submitMessage(isApproved, isAdmin bool) string {
	switch {
	case isApproved && isAdmin:
		return "Job posted and approved instantly."
	case isApproved:
		return "Job posted successfully and is live."
	default:
		return "Job submitted successfully. It is now pending admin approval."
	}
}

func parseDeadline(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil, nil
	}

	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return &parsed, nil
		}
	}

	return nil, apperror.NewValidation(map[string]string{
		"deadline": "deadline must be a date in YYYY-MM-DD format",
	})
}

func trimPtr(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
