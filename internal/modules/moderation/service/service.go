package moderation

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gsualumni/alumninet/internal/entity"
	accRepo "github.com/gsualumni/alumninet/internal/modules/accomplishment/repository"
	jobRepo "github.com/gsualumni/alumninet/internal/modules/job/repository"
	modDto "github.com/gsualumni/alumninet/internal/modules/moderation/dto"
	notification "github.com/gsualumni/alumninet/internal/modules/notification/service"
	"github.com/gsualumni/alumninet/internal/policy"
	"github.com/gsualumni/alumninet/pkg/apperror"
)

// pageSize matches the moderation dashboard, which renders a fixed-size
// queue page.
const pageSize = 8

type Service interface {
	ListPendingJobs(ctx context.Context, role string, page int) (*modDto.PendingJobsResponse, error)
	ListPendingAccomplishments(ctx context.Context, role string, page int) (*modDto.PendingAccomplishmentsResponse, error)
	ApproveJob(ctx context.Context, moderatorID uuid.UUID, role string, id uuid.UUID) (*modDto.ModerationResult, error)
	// RejectJob deactivates the posting. The row survives for the poster's
	// own history.
	RejectJob(ctx context.Context, moderatorID uuid.UUID, role string, id uuid.UUID) (*modDto.ModerationResult, error)
	ApproveAccomplishment(ctx context.Context, moderatorID uuid.UUID, role string, id uuid.UUID) (*modDto.ModerationResult, error)
	// RejectAccomplishment removes the row permanently.
	RejectAccomplishment(ctx context.Context, moderatorID uuid.UUID, role string, id uuid.UUID) (*modDto.ModerationResult, error)
}

type service struct {
	jobs     jobRepo.Repository
	accs     accRepo.Repository
	notifier notification.Service
}

func NewService(jobs jobRepo.Repository, accs accRepo.Repository, notifier notification.Service) Service {
	return &service{jobs: jobs, accs: accs, notifier: notifier}
}

func (s *service) ListPendingJobs(ctx context.Context, role string, page int) (*modDto.PendingJobsResponse, error) {
	if !policy.Allowed(role, policy.ActionModerateContent) {
		return nil, apperror.ErrForbidden
	}
	if page < 1 {
		page = 1
	}

	jobs, total, err := s.jobs.FindPending(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending jobs: %w", err)
	}

	items := make([]modDto.PendingJobItem, 0, len(jobs))
	for _, j := range jobs {
		items = append(items, modDto.PendingJobItem{
			ID:          j.ID,
			Title:       j.Title,
			Company:     j.Company,
			Description: j.Description,
			Location:    j.Location,
			Deadline:    j.Deadline,
			PosterName:  j.Poster.User.Name,
			SubmittedAt: j.CreatedAt,
		})
	}

	return &modDto.PendingJobsResponse{
		Items: items,
		Meta:  queueMeta(page, total),
	}, nil
}

func (s *service) ListPendingAccomplishments(ctx context.Context, role string, page int) (*modDto.PendingAccomplishmentsResponse, error) {
	if !policy.Allowed(role, policy.ActionModerateContent) {
		return nil, apperror.ErrForbidden
	}
	if page < 1 {
		page = 1
	}

	accs, total, err := s.accs.FindPending(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending accomplishments: %w", err)
	}

	items := make([]modDto.PendingAccomplishmentItem, 0, len(accs))
	for _, a := range accs {
		items = append(items, modDto.PendingAccomplishmentItem{
			ID:          a.ID,
			Type:        a.Type,
			Title:       a.Title,
			Description: a.Description,
			ImageURL:    a.ImageURL,
			Date:        a.Date,
			OwnerName:   a.Alumni.User.Name,
			SubmittedAt: a.CreatedAt,
		})
	}

	return &modDto.PendingAccomplishmentsResponse{
		Items: items,
		Meta:  queueMeta(page, total),
	}, nil
}

func (s *service) ApproveJob(ctx context.Context, moderatorID uuid.UUID, role string, id uuid.UUID) (*modDto.ModerationResult, error) {
	if !policy.Allowed(role, policy.ActionModerateContent) {
		return nil, apperror.ErrForbidden
	}

	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	// Approving twice converges to the same state, only the approver stamp
	// moves to the latest moderator.
	if err := s.jobs.SetApproved(ctx, id, moderatorID); err != nil {
		return nil, fmt.Errorf("failed to approve job: %w", err)
	}

	s.notify(ctx, job.Poster.UserID, moderatorID, entity.NotificationJobApproved,
		fmt.Sprintf("Your job posting %q was approved.", job.Title), &job.ID)

	return &modDto.ModerationResult{ID: id, Message: "Job approved."}, nil
}

func (s *service) RejectJob(ctx context.Context, moderatorID uuid.UUID, role string, id uuid.UUID) (*modDto.ModerationResult, error) {
	if !policy.Allowed(role, policy.ActionModerateContent) {
		return nil, apperror.ErrForbidden
	}

	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Already gone, nothing to reject.
			return &modDto.ModerationResult{ID: id, Message: "Job rejected."}, nil
		}
		return nil, err
	}

	if err := s.jobs.Deactivate(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to reject job: %w", err)
	}

	s.notify(ctx, job.Poster.UserID, moderatorID, entity.NotificationJobRejected,
		fmt.Sprintf("Your job posting %q was rejected.", job.Title), &job.ID)

	return &modDto.ModerationResult{ID: id, Message: "Job rejected."}, nil
}

func (s *service) ApproveAccomplishment(ctx context.Context, moderatorID uuid.UUID, role string, id uuid.UUID) (*modDto.ModerationResult, error) {
	if !policy.Allowed(role, policy.ActionModerateContent) {
		return nil, apperror.ErrForbidden
	}

	acc, err := s.accs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if err := s.accs.SetApproved(ctx, id, moderatorID); err != nil {
		return nil, fmt.Errorf("failed to approve accomplishment: %w", err)
	}

	s.notify(ctx, acc.Alumni.UserID, moderatorID, entity.NotificationAccomplishmentApproved,
		fmt.Sprintf("Your accomplishment %q was approved.", acc.Title), &acc.ID)

	return &modDto.ModerationResult{ID: id, Message: "Accomplishment approved."}, nil
}

func (s *service) RejectAccomplishment(ctx context.Context, moderatorID uuid.UUID, role string, id uuid.UUID) (*modDto.ModerationResult, error) {
	if !policy.Allowed(role, policy.ActionModerateContent) {
		return nil, apperror.ErrForbidden
	}

	acc, err := s.accs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &modDto.ModerationResult{ID: id, Message: "Accomplishment rejected."}, nil
		}
		return nil, err
	}

	if err := s.accs.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to reject accomplishment: %w", err)
	}

	s.notify(ctx, acc.Alumni.UserID, moderatorID, entity.NotificationAccomplishmentRejected,
		fmt.Sprintf("Your accomplishment %q was rejected and removed.", acc.Title), nil)

	return &modDto.ModerationResult{ID: id, Message: "Accomplishment rejected."}, nil
}

// notify is best-effort, a failed notification never fails the moderation
// action itself.
func (s *service) notify(ctx context.Context, ownerID, actorID uuid.UUID, notifType, message string, refID *uuid.UUID) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyModeration(ctx, ownerID, actorID, notifType, message, refID); err != nil {
		log.Printf("failed to notify user %s: %v", ownerID, err)
	}
}

func queueMeta(page int, total int64) modDto.QueueMeta {
	totalPages := int((total + pageSize - 1) / pageSize)
	return modDto.QueueMeta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
