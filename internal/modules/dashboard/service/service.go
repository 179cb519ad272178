package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/gsualumni/alumninet/internal/entity"
	accRepo "github.com/gsualumni/alumninet/internal/modules/accomplishment/repository"
	alumni "github.com/gsualumni/alumninet/internal/modules/alumni/service"
	dashDto "github.com/gsualumni/alumninet/internal/modules/dashboard/dto"
	repo "github.com/gsualumni/alumninet/internal/modules/dashboard/repository"
	eventRepo "github.com/gsualumni/alumninet/internal/modules/event/repository"
	jobRepo "github.com/gsualumni/alumninet/internal/modules/job/repository"
	notification "github.com/gsualumni/alumninet/internal/modules/notification/service"
	"github.com/gsualumni/alumninet/internal/policy"
	"github.com/gsualumni/alumninet/pkg/apperror"
)

const (
	// Each content kind contributes up to this many rows to the feed.
	perKindFetchLimit = 6
	// The merged activity feed is capped after interleaving.
	activityFeedLimit = 8
)

type Service interface {
	AdminOverview(ctx context.Context, role string) (*dashDto.AdminOverview, error)
	MemberOverview(ctx context.Context, userID uuid.UUID, role string) (*dashDto.MemberOverview, error)
}

type service struct {
	dash      repo.Repository
	jobs      jobRepo.Repository
	accs      accRepo.Repository
	events    eventRepo.Repository
	alumniSvc alumni.Service
	notifier  notification.Service
	now       func() time.Time
}

func NewService(dash repo.Repository, jobs jobRepo.Repository, accs accRepo.Repository, events eventRepo.Repository, alumniSvc alumni.Service, notifier notification.Service) Service {
	return &service{
		dash:      dash,
		jobs:      jobs,
		accs:      accs,
		events:    events,
		alumniSvc: alumniSvc,
		notifier:  notifier,
		now:       time.Now,
	}
}

func (s *service) AdminOverview(ctx context.Context, role string) (*dashDto.AdminOverview, error) {
	if !policy.Allowed(role, policy.ActionViewAdminDashboard) {
		return nil, apperror.ErrForbidden
	}

	counts, err := s.dash.Overview(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to load overview: %w", err)
	}

	return &dashDto.AdminOverview{
		TotalUsers:             counts.TotalUsers,
		TotalAlumni:            counts.TotalAlumni,
		PendingJobs:            counts.PendingJobs,
		PendingAccomplishments: counts.PendingAccomplishments,
		UpcomingEvents:         counts.UpcomingEvents,
		ActiveJobs:             counts.ActiveJobs,
	}, nil
}

func (s *service) MemberOverview(ctx context.Context, userID uuid.UUID, role string) (*dashDto.MemberOverview, error) {
	profile, err := s.alumniSvc.EnsureProfile(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	jobs, err := s.jobs.FindByPoster(ctx, profile.ID, perKindFetchLimit)
	if err != nil {
		return nil, err
	}
	accs, err := s.accs.FindByAlumni(ctx, profile.ID, perKindFetchLimit)
	if err != nil {
		return nil, err
	}

	submissions := mergeSubmissions(jobs, accs)

	stats, err := s.dash.MemberStats(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load member stats: %w", err)
	}

	upcoming, err := s.events.CountUpcoming(ctx, s.now())
	if err != nil {
		return nil, err
	}

	var unread int64
	if s.notifier != nil {
		if unread, err = s.notifier.UnreadCount(ctx, userID); err != nil {
			return nil, err
		}
	}

	return &dashDto.MemberOverview{
		Profile: profileSummary(profile),
		Stats: dashDto.MemberStats{
			MyJobs:            stats.MyJobs,
			MyAccomplishments: stats.MyAccomplishments,
			NetworkSize:       stats.NetworkSize,
		},
		Submissions:    submissions,
		UpcomingEvents: upcoming,
		UnreadCount:    unread,
	}, nil
}

func profileSummary(profile *entity.Alumni) dashDto.ProfileSummary {
	name := profile.User.Name
	if name == "" {
		name = "Member"
	}
	return dashDto.ProfileSummary{
		Name:           name,
		Email:          profile.User.Email,
		Department:     profile.Department,
		GraduationYear: profile.GraduationYear,
		Employer:       profile.Employer,
		JobTitle:       profile.JobTitle,
		City:           profile.CurrentCity,
	}
}

// mergeSubmissions interleaves both content kinds into one newest-first
// activity feed, capped at activityFeedLimit.
func mergeSubmissions(jobs []*entity.Job, accs []*entity.Accomplishment) []dashDto.MySubmission {
	merged := make([]dashDto.MySubmission, 0, len(jobs)+len(accs))
	for _, j := range jobs {
		merged = append(merged, dashDto.MySubmission{
			ID:         j.ID,
			Kind:       "JOB",
			Title:      j.Title,
			IsApproved: j.IsApproved,
			IsActive:   j.IsActive,
			CreatedAt:  j.CreatedAt,
		})
	}
	for _, a := range accs {
		merged = append(merged, dashDto.MySubmission{
			ID:         a.ID,
			Kind:       "ACCOMPLISHMENT",
			Title:      a.Title,
			IsApproved: a.IsApproved,
			IsActive:   true,
			CreatedAt:  a.CreatedAt,
		})
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	if len(merged) > activityFeedLimit {
		merged = merged[:activityFeedLimit]
	}
	return merged
}
