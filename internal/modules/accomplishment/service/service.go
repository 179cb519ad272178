package accomplishment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/gsualumni/alumninet/internal/entity"
	accDto "github.com/gsualumni/alumninet/internal/modules/accomplishment/dto"
	repo "github.com/gsualumni/alumninet/internal/modules/accomplishment/repository"
	alumni "github.com/gsualumni/alumninet/internal/modules/alumni/service"
	"github.com/gsualumni/alumninet/internal/modules/settings"
	"github.com/gsualumni/alumninet/internal/policy"
	"github.com/gsualumni/alumninet/pkg/apperror"
	"github.com/gsualumni/alumninet/pkg/ratelimiter"
	"github.com/gsualumni/alumninet/pkg/sanitize"
)

const rateLimitAction = "submit_accomplishment"

type Service interface {
	GateSubmission(ctx context.Context, role string) error
	SubmitAccomplishment(ctx context.Context, userID uuid.UUID, role string, req accDto.CreateAccomplishmentRequest) (*accDto.SubmitAccomplishmentResponse, error)
}

type service struct {
	accRepo     repo.Repository
	alumniSvc   alumni.Service
	settings    settings.Provider
	redisClient *redis.Client
	rateWindow  time.Duration
}

func NewService(accRepo repo.Repository, alumniSvc alumni.Service, provider settings.Provider, redisClient *redis.Client, rateWindow time.Duration) Service {
	return &service{
		accRepo:     accRepo,
		alumniSvc:   alumniSvc,
		settings:    provider,
		redisClient: redisClient,
		rateWindow:  rateWindow,
	}
}

// GateSubmission checks role and maintenance state ahead of payload
// validation, so an outage is reported before any field errors.
func (s *service) GateSubmission(ctx context.Context, role string) error {
	if !policy.Allowed(role, policy.ActionSubmitAccomplishment) {
		return apperror.ErrForbidden
	}

	current, err := s.settings.Current(ctx)
	if err != nil {
		return err
	}

	if current.MaintenanceMode && role != entity.RoleAdmin {
		return fmt.Errorf("sharing accomplishments is temporarily disabled: %w", apperror.ErrMaintenance)
	}
	return nil
}

func (s *service) SubmitAccomplishment(ctx context.Context, userID uuid.UUID, role string, req accDto.CreateAccomplishmentRequest) (*accDto.SubmitAccomplishmentResponse, error) {
	if err := s.GateSubmission(ctx, role); err != nil {
		return nil, err
	}

	current, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	isAdmin := role == entity.RoleAdmin

	date, err := parseDate(req.Date)
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
			Message:    "you are sharing accomplishments too quickly, try again shortly",
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

	requireApproval := current.RequireApprovalForAccomplishments
	isApproved := !requireApproval
	if isAdmin {
		isApproved = current.AdminAutoApproveOwnContent || !requireApproval
	}

	var approvedBy *uuid.UUID
	if isApproved && isAdmin {
		approvedBy = &userID
	}

	acc := &entity.Accomplishment{
		AlumniID:     profile.ID,
		Type:         req.Type,
		Title:        strings.TrimSpace(req.Title),
		Description:  sanitize.UGCPtr(req.Description),
		ImageURL:     trimPtr(req.ImageURL),
		Date:         date,
		IsApproved:   isApproved,
		ApprovedByID: approvedBy,
	}

	if err := s.accRepo.Create(ctx, acc); err != nil {
		return nil, fmt.Errorf("failed to create accomplishment: %w", err)
	}
	created = true

	return &accDto.SubmitAccomplishmentResponse{
		ID:      acc.ID,
		Title:   acc.Title,
		Message: submitMessage(isApproved, isAdmin),
	}, nil
}

func submitMessage(isApproved, isAdmin bool) string {
	switch {
	case isApproved && isAdmin:
		return "Accomplishment shared and approved instantly."
	case isApproved:
		return "Accomplishment shared successfully and is live."
	default:
		return "Accomplishment submitted successfully. It is now pending admin approval."
	}
}

func parseDate(raw *string) (*time.Time, error) {
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
		"date": "date must be a date in YYYY-MM-DD format",
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
