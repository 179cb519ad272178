package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gsualumni/alumninet/internal/entity"
	authDto "github.com/gsualumni/alumninet/internal/modules/auth/dto"
	"github.com/gsualumni/alumninet/internal/modules/settings"
	"github.com/gsualumni/alumninet/internal/session"
	"github.com/gsualumni/alumninet/pkg/apperror"
)

const testSecret = "test-secret"

type fakeUserRepo struct {
	users    map[uuid.UUID]*entity.User
	profiles map[uuid.UUID]*entity.Alumni
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    make(map[uuid.UUID]*entity.User),
		profiles: make(map[uuid.UUID]*entity.Alumni),
	}
}

func (f *fakeUserRepo) CreateWithProfile(ctx context.Context, user *entity.User, profile *entity.Alumni) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	profile.UserID = user.ID
	f.users[user.ID] = user
	f.profiles[user.ID] = profile
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		if p, ok := f.profiles[id]; ok {
			u.Alumni = p
		}
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) MatricExists(ctx context.Context, matricNo string) (bool, error) {
	for _, p := range f.profiles {
		if p.MatricNo == matricNo {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, offset, limit int) ([]entity.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	if u, ok := f.users[id]; ok {
		u.Role = role
	}
	return nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func newTestService(repo *fakeUserRepo, s settings.Settings) Service {
	return NewService(repo, settings.Static{Settings: s}, testSecret, time.Hour)
}

func validRegister() authDto.RegisterRequest {
	return authDto.RegisterRequest{
		Name:           "Ada Obi",
		Email:          "Ada.Obi@example.com",
		Password:       "Password@123",
		MatricNo:       "GSU/MEM/2019/0042",
		Department:     "Computer Science",
		GraduationYear: 2019,
	}
}

func TestRegisterCreatesMemberWithProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, settings.Defaults())

	resp, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	assert.Equal(t, entity.RoleMember, resp.User.Role)
	assert.Equal(t, "ada.obi@example.com", resp.User.Email, "email is normalised")
	assert.NotEmpty(t, resp.Token)

	claims, err := session.Verify(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleMember, claims.Role)

	require.Len(t, repo.profiles, 1)
	for _, p := range repo.profiles {
		assert.Equal(t, "GSU/MEM/2019/0042", p.MatricNo)
		assert.Equal(t, entity.AlumniStatusActive, p.Status)
	}

	for _, u := range repo.users {
		assert.NotEqual(t, "Password@123", u.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Password@123")))
	}
}

func TestRegisterAppliesDefaultNewUserVerified(t *testing.T) {
	for _, verified := range []bool{true, false} {
		repo := newFakeUserRepo()
		cfg := settings.Defaults()
		cfg.DefaultNewUserVerified = verified
		svc := newTestService(repo, cfg)

		_, err := svc.Register(context.Background(), validRegister())
		require.NoError(t, err)

		for _, u := range repo.users {
			assert.Equal(t, verified, u.IsVerified)
		}
	}
}

func TestRegisterUppercasesMatricNo(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, settings.Defaults())

	req := validRegister()
	req.MatricNo = "gsu/mem/2019/0042"
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	for _, p := range repo.profiles {
		assert.Equal(t, "GSU/MEM/2019/0042", p.MatricNo)
	}

	// The duplicate check runs on the normalised form.
	again := validRegister()
	again.Email = "someone.else@example.com"
	again.MatricNo = "GSU/mem/2019/0042"
	_, err = svc.Register(context.Background(), again)
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestRegisterBlockedByMaintenance(t *testing.T) {
	repo := newFakeUserRepo()
	cfg := settings.Defaults()
	cfg.MaintenanceMode = true
	svc := newTestService(repo, cfg)

	_, err := svc.Register(context.Background(), validRegister())
	assert.ErrorIs(t, err, apperror.ErrMaintenance)
	assert.Empty(t, repo.users)
}

func TestRegisterBlockedWhenRegistrationClosed(t *testing.T) {
	repo := newFakeUserRepo()
	cfg := settings.Defaults()
	cfg.AllowPublicRegistration = false
	svc := newTestService(repo, cfg)

	_, err := svc.Register(context.Background(), validRegister())
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Empty(t, repo.users)
}

func TestRegisterDuplicateEmailAndMatric(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, settings.Defaults())

	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegister())
	assert.ErrorIs(t, err, apperror.ErrConflict)

	other := validRegister()
	other.Email = "someone.else@example.com"
	_, err = svc.Register(context.Background(), other)
	assert.ErrorIs(t, err, apperror.ErrConflict, "matric number is unique too")
}

func TestLoginRoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, settings.Defaults())

	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), authDto.LoginRequest{
		Email:    "ada.obi@example.com",
		Password: "Password@123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Obi", resp.User.Name)
}

func TestLoginInvalidCredentialsIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, settings.Defaults())

	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	_, wrongPassword := svc.Login(context.Background(), authDto.LoginRequest{
		Email:    "ada.obi@example.com",
		Password: "nope",
	})
	_, unknownEmail := svc.Login(context.Background(), authDto.LoginRequest{
		Email:    "ghost@example.com",
		Password: "nope",
	})

	assert.ErrorIs(t, wrongPassword, apperror.ErrUnauthorized)
	assert.ErrorIs(t, unknownEmail, apperror.ErrUnauthorized)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestMeIncludesProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, settings.Defaults())

	reg, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	me, err := svc.Me(context.Background(), reg.User.ID)
	require.NoError(t, err)
	assert.True(t, me.HasProfile)
	require.NotNil(t, me.Profile)
	assert.Equal(t, "Computer Science", me.Profile.Department)
}
