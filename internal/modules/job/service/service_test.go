package job

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gsualumni/alumninet/internal/entity"
	alumniDto "github.com/gsualumni/alumninet/internal/modules/alumni/dto"
	jobDto "github.com/gsualumni/alumninet/internal/modules/job/dto"
	"github.com/gsualumni/alumninet/internal/modules/settings"
	"github.com/gsualumni/alumninet/pkg/apperror"
)

type fakeJobRepo struct {
	jobs []*entity.Job
}

func (f *fakeJobRepo) Create(ctx context.Context, job *entity.Job) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeJobRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	for _, j := range f.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (f *fakeJobRepo) FindPending(ctx context.Context, offset, limit int) ([]*entity.Job, int64, error) {
	return nil, 0, nil
}

func (f *fakeJobRepo) SetApproved(ctx context.Context, id, approverID uuid.UUID) error {
	return nil
}

func (f *fakeJobRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (f *fakeJobRepo) FindByPoster(ctx context.Context, posterID uuid.UUID, limit int) ([]*entity.Job, error) {
	return nil, nil
}

// fakeAlumniService resolves profiles for registered users and
// auto-provisions admins, mirroring the alumni service contract.
type fakeAlumniService struct {
	profiles    map[uuid.UUID]*entity.Alumni
	provisioned int
}

func newFakeAlumniService() *fakeAlumniService {
	return &fakeAlumniService{profiles: make(map[uuid.UUID]*entity.Alumni)}
}

func (f *fakeAlumniService) EnsureProfile(ctx context.Context, userID uuid.UUID, role string) (*entity.Alumni, error) {
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	if role != entity.RoleAdmin {
		return nil, apperror.ErrProfileRequired
	}
	p := &entity.Alumni{ID: uuid.New(), UserID: userID, MatricNo: "ADMIN-SYNTHETIC"}
	f.profiles[userID] = p
	f.provisioned++
	return p, nil
}

func (f *fakeAlumniService) Search(ctx context.Context, role string, filter alumniDto.SearchFilter) (*alumniDto.SearchResponse, error) {
	return nil, nil
}

func validRequest() jobDto.CreateJobRequest {
	return jobDto.CreateJobRequest{
		Title:       "Senior Engineer Role",
		Description: "We are hiring a senior engineer for the platform team.",
	}
}

func newTestService(repo *fakeJobRepo, alumniSvc *fakeAlumniService, s settings.Settings) Service {
	return NewService(repo, alumniSvc, settings.Static{Settings: s}, nil, time.Second)
}

func memberWithProfile(alumniSvc *fakeAlumniService) uuid.UUID {
	userID := uuid.New()
	alumniSvc.profiles[userID] = &entity.Alumni{ID: uuid.New(), UserID: userID, MatricNo: "GSU/MEM/2019/0001"}
	return userID
}

func TestSubmitJobMemberRequiresApproval(t *testing.T) {
	repo := &fakeJobRepo{}
	alumniSvc := newFakeAlumniService()
	userID := memberWithProfile(alumniSvc)

	cfg := settings.Defaults() // requireApprovalForJobs=true
	svc := newTestService(repo, alumniSvc, cfg)

	resp, err := svc.SubmitJob(context.Background(), userID, entity.RoleMember, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer Role", resp.Title)

	require.Len(t, repo.jobs, 1)
	assert.False(t, repo.jobs[0].IsApproved)
	assert.Nil(t, repo.jobs[0].ApprovedByID)
	assert.True(t, repo.jobs[0].IsActive)
}

func TestSubmitJobMemberAutoApprovedWhenApprovalOff(t *testing.T) {
	repo := &fakeJobRepo{}
	alumniSvc := newFakeAlumniService()
	userID := memberWithProfile(alumniSvc)

	cfg := settings.Defaults()
	cfg.RequireApprovalForJobs = false
	svc := newTestService(repo, alumniSvc, cfg)

	_, err := svc.SubmitJob(context.Background(), userID, entity.RoleMember, validRequest())
	require.NoError(t, err)

	require.Len(t, repo.jobs, 1)
	assert.True(t, repo.jobs[0].IsApproved)
	// Approved without an approver on record: only admins self-stamp.
	assert.Nil(t, repo.jobs[0].ApprovedByID)
}

func TestSubmitJobAdminSelfApproves(t *testing.T) {
	for _, requireApproval := range []bool{true, false} {
		repo := &fakeJobRepo{}
		alumniSvc := newFakeAlumniService()
		adminID := uuid.New()
		alumniSvc.profiles[adminID] = &entity.Alumni{ID: uuid.New(), UserID: adminID}

		cfg := settings.Defaults()
		cfg.RequireApprovalForJobs = requireApproval
		cfg.AdminAutoApproveOwnContent = true
		svc := newTestService(repo, alumniSvc, cfg)

		_, err := svc.SubmitJob(context.Background(), adminID, entity.RoleAdmin, validRequest())
		require.NoError(t, err)

		require.Len(t, repo.jobs, 1)
		assert.True(t, repo.jobs[0].IsApproved)
		require.NotNil(t, repo.jobs[0].ApprovedByID)
		assert.Equal(t, adminID, *repo.jobs[0].ApprovedByID)
	}
}

func TestSubmitJobAdminPendingWhenAutoApproveOff(t *testing.T) {
	repo := &fakeJobRepo{}
	alumniSvc := newFakeAlumniService()
	adminID := uuid.New()
	alumniSvc.profiles[adminID] = &entity.Alumni{ID: uuid.New(), UserID: adminID}

	cfg := settings.Defaults()
	cfg.AdminAutoApproveOwnContent = false // requireApprovalForJobs stays true
	svc := newTestService(repo, alumniSvc, cfg)

	_, err := svc.SubmitJob(context.Background(), adminID, entity.RoleAdmin, validRequest())
	require.NoError(t, err)

	require.Len(t, repo.jobs, 1)
	assert.False(t, repo.jobs[0].IsApproved)
	assert.Nil(t, repo.jobs[0].ApprovedByID)
}

func TestSubmitJobMaintenanceBlocksNonAdmins(t *testing.T) {
	repo := &fakeJobRepo{}
	alumniSvc := newFakeAlumniService()
	userID := memberWithProfile(alumniSvc)

	cfg := settings.Defaults()
	cfg.MaintenanceMode = true
	svc := newTestService(repo, alumniSvc, cfg)

	_, err := svc.SubmitJob(context.Background(), userID, entity.RoleMember, validRequest())
	assert.ErrorIs(t, err, apperror.ErrMaintenance)
	assert.Empty(t, repo.jobs, "no row may be created under maintenance")
}

func TestSubmitJobMaintenanceAllowsAdmins(t *testing.T) {
	repo := &fakeJobRepo{}
	alumniSvc := newFakeAlumniService()
	adminID := uuid.New()
	alumniSvc.profiles[adminID] = &entity.Alumni{ID: uuid.New(), UserID: adminID}

	cfg := settings.Defaults()
	cfg.MaintenanceMode = true
	svc := newTestService(repo, alumniSvc, cfg)

	_, err := svc.SubmitJob(context.Background(), adminID, entity.RoleAdmin, validRequest())
	require.NoError(t, err)
	assert.Len(t, repo.jobs, 1)
}

func TestSubmitJobAdminWithoutProfileAutoProvisions(t *testing.T) {
	repo := &fakeJobRepo{}
	alumniSvc := newFakeAlumniService()
	adminID := uuid.New()

	svc := newTestService(repo, alumniSvc, settings.Defaults())

	resp, err := svc.SubmitJob(context.Background(), adminID, entity.RoleAdmin, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer Role", resp.Title)
	assert.Equal(t, 1, alumniSvc.provisioned)
	require.Len(t, repo.jobs, 1)
	assert.Equal(t, alumniSvc.profiles[adminID].ID, repo.jobs[0].PosterID)
}

func TestSubmitJobMemberWithoutProfileFails(t *testing.T) {
	repo := &fakeJobRepo{}
	svc := newTestService(repo, newFakeAlumniService(), settings.Defaults())

	_, err := svc.SubmitJob(context.Background(), uuid.New(), entity.RoleMember, validRequest())
	assert.ErrorIs(t, err, apperror.ErrProfileRequired)
	assert.Empty(t, repo.jobs)
}

func TestSubmitJobInvalidDeadline(t *testing.T) {
	repo := &fakeJobRepo{}
	alumniSvc := newFakeAlumniService()
	userID := memberWithProfile(alumniSvc)
	svc := newTestService(repo, alumniSvc, settings.Defaults())

	bad := "next tuesday"
	req := validRequest()
	req.Deadline = &bad

	_, err := svc.SubmitJob(context.Background(), userID, entity.RoleMember, req)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Empty(t, repo.jobs)
}

func TestSubmitJobParsesDeadline(t *testing.T) {
	repo := &fakeJobRepo{}
	alumniSvc := newFakeAlumniService()
	userID := memberWithProfile(alumniSvc)
	svc := newTestService(repo, alumniSvc, settings.Defaults())

	deadline := "2026-12-31"
	req := validRequest()
	req.Deadline = &deadline

	_, err := svc.SubmitJob(context.Background(), userID, entity.RoleMember, req)
	require.NoError(t, err)
	require.Len(t, repo.jobs, 1)
	require.NotNil(t, repo.jobs[0].Deadline)
	assert.Equal(t, 2026, repo.jobs[0].Deadline.Year())
	assert.Equal(t, time.December, repo.jobs[0].Deadline.Month())
}

func TestSubmitJobSanitizesDescription(t *testing.T) {
	repo := &fakeJobRepo{}
	alumniSvc := newFakeAlumniService()
	userID := memberWithProfile(alumniSvc)
	svc := newTestService(repo, alumniSvc, settings.Defaults())

	req := validRequest()
	req.Description = "Great role, apply now.<script>alert('x')</script> Hiring immediately."

	_, err := svc.SubmitJob(context.Background(), userID, entity.RoleMember, req)
	require.NoError(t, err)
	require.Len(t, repo.jobs, 1)
	assert.NotContains(t, repo.jobs[0].Description, "<script>")
	assert.Contains(t, repo.jobs[0].Description, "Great role")
}

func TestSubmitJobUnknownRoleForbidden(t *testing.T) {
	repo := &fakeJobRepo{}
	svc := newTestService(repo, newFakeAlumniService(), settings.Defaults())

	_, err := svc.SubmitJob(context.Background(), uuid.New(), "SUPERUSER", validRequest())
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}
