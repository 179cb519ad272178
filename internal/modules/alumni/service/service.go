package alumni

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gsualumni/alumninet/internal/entity"
	alumniDto "github.com/gsualumni/alumninet/internal/modules/alumni/dto"
	repo "github.com/gsualumni/alumninet/internal/modules/alumni/repository"
	"github.com/gsualumni/alumninet/internal/policy"
	"github.com/gsualumni/alumninet/pkg/apperror"
)

type Service interface {
	// EnsureProfile resolves the caller's alumni profile. Admins without one
	// get a synthetic profile created on the fly so they are never blocked.
	EnsureProfile(ctx context.Context, userID uuid.UUID, role string) (*entity.Alumni, error)
	Search(ctx context.Context, role string, filter alumniDto.SearchFilter) (*alumniDto.SearchResponse, error)
}

type service struct {
	repo repo.Repository
}

func NewService(repo repo.Repository) Service {
	return &service{repo: repo}
}

func (s *service) EnsureProfile(ctx context.Context, userID uuid.UUID, role string) (*entity.Alumni, error) {
	existing, err := s.repo.FindByUserID(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up alumni profile: %w", err)
	}

	if role != entity.RoleAdmin {
		return nil, apperror.ErrProfileRequired
	}

	profile := &entity.Alumni{
		UserID:         userID,
		MatricNo:       syntheticMatricNo(userID),
		Department:     "Administration",
		GraduationYear: time.Now().Year(),
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to auto-provision admin profile: %w", err)
	}

	return profile, nil
}

func (s *service) Search(ctx context.Context, role string, filter alumniDto.SearchFilter) (*alumniDto.SearchResponse, error) {
	if !policy.Allowed(role, policy.ActionViewDirectory) {
		return nil, apperror.ErrForbidden
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 50 {
		filter.Limit = 20
	}

	rows, total, err := s.repo.Search(ctx, repo.SearchFilter{
		Department: strings.TrimSpace(filter.Department),
		Year:       filter.Year,
		City:       strings.TrimSpace(filter.City),
		Employer:   strings.TrimSpace(filter.Employer),
		Skills:     strings.TrimSpace(filter.Skills),
	}, (filter.Page-1)*filter.Limit, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("alumni search failed: %w", err)
	}

	items := make([]alumniDto.AlumniItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, alumniDto.AlumniItem{
			ID:             row.ID,
			Name:           row.User.Name,
			Email:          row.User.Email,
			MatricNo:       row.MatricNo,
			Department:     row.Department,
			GraduationYear: row.GraduationYear,
			Status:         row.Status,
			Employer:       row.Employer,
			JobTitle:       row.JobTitle,
			CurrentCity:    row.CurrentCity,
			Skills:         row.Skills,
		})
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	if totalPages < 1 {
		totalPages = 1
	}

	return &alumniDto.SearchResponse{
		Data: items,
		Meta: alumniDto.PaginationMeta{
			CurrentPage: filter.Page,
			TotalPages:  totalPages,
			TotalItems:  total,
			Limit:       filter.Limit,
		},
	}, nil
}

// syntheticMatricNo derives a unique admin matric number from the trailing
// twelve characters of the user ID.
func syntheticMatricNo(userID uuid.UUID) string {
	id := userID.String()
	return "ADMIN-" + strings.ToUpper(id[len(id)-12:])
}
