package alumni

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gsualumni/alumninet/internal/entity"
	alumniDto "github.com/gsualumni/alumninet/internal/modules/alumni/dto"
	repo "github.com/gsualumni/alumninet/internal/modules/alumni/repository"
	"github.com/gsualumni/alumninet/pkg/apperror"
)

type fakeRepo struct {
	byUserID map[uuid.UUID]*entity.Alumni
	created  []*entity.Alumni
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byUserID: make(map[uuid.UUID]*entity.Alumni)}
}

func (f *fakeRepo) Create(ctx context.Context, a *entity.Alumni) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	f.byUserID[a.UserID] = a
	f.created = append(f.created, a)
	return nil
}

func (f *fakeRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Alumni, error) {
	if a, ok := f.byUserID[userID]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Alumni, error) {
	for _, a := range f.byUserID {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) Search(ctx context.Context, filter repo.SearchFilter, offset, limit int) ([]*entity.Alumni, int64, error) {
	var out []*entity.Alumni
	for _, a := range f.byUserID {
		if filter.Department != "" && !strings.Contains(strings.ToLower(a.Department), strings.ToLower(filter.Department)) {
			continue
		}
		if filter.Year > 0 && a.GraduationYear != filter.Year {
			continue
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func TestEnsureProfileExisting(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New()
	repo.byUserID[userID] = &entity.Alumni{ID: uuid.New(), UserID: userID, MatricNo: "GSU/MEM/2019/0001"}

	svc := NewService(repo)

	got, err := svc.EnsureProfile(context.Background(), userID, entity.RoleMember)
	require.NoError(t, err)
	assert.Equal(t, "GSU/MEM/2019/0001", got.MatricNo)
	assert.Empty(t, repo.created)
}

func TestEnsureProfileMemberWithoutProfileFails(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.EnsureProfile(context.Background(), uuid.New(), entity.RoleMember)
	assert.ErrorIs(t, err, apperror.ErrProfileRequired)
}

func TestEnsureProfileAdminAutoProvision(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	userID := uuid.New()

	got, err := svc.EnsureProfile(context.Background(), userID, entity.RoleAdmin)
	require.NoError(t, err)

	idStr := userID.String()
	wantMatric := "ADMIN-" + strings.ToUpper(idStr[len(idStr)-12:])
	assert.Equal(t, wantMatric, got.MatricNo)
	assert.Equal(t, "Administration", got.Department)
	require.Len(t, repo.created, 1)

	// Second call resolves the provisioned profile instead of creating another.
	again, err := svc.EnsureProfile(context.Background(), userID, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, got.ID, again.ID)
	assert.Len(t, repo.created, 1)
}

func TestSearchRequiresDirectoryAccess(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Search(context.Background(), "", alumniDto.SearchFilter{})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestSearchDefaultsPagination(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New()
	repo.byUserID[userID] = &entity.Alumni{
		ID: uuid.New(), UserID: userID, MatricNo: "M1",
		Department: "Computer Science", GraduationYear: 2019,
		User: entity.User{Name: "Jane", Email: "jane@example.com"},
	}
	svc := NewService(repo)

	got, err := svc.Search(context.Background(), entity.RoleMember, alumniDto.SearchFilter{Department: "computer"})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Meta.CurrentPage)
	assert.Equal(t, 20, got.Meta.Limit)
	require.Len(t, got.Data, 1)
	assert.Equal(t, "Jane", got.Data[0].Name)
}
