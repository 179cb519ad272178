package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gsualumni/alumninet/internal/entity"
	adminDto "github.com/gsualumni/alumninet/internal/modules/admin/dto"
	userRepo "github.com/gsualumni/alumninet/internal/modules/auth/repository"
	"github.com/gsualumni/alumninet/internal/policy"
	"github.com/gsualumni/alumninet/pkg/apperror"
)

type Service interface {
	ListUsers(ctx context.Context, role string, page, limit int) (*adminDto.ListUsersResponse, error)
	UpdateUserRole(ctx context.Context, actorID uuid.UUID, actorRole string, targetID uuid.UUID, newRole string) (*adminDto.UpdateRoleResponse, error)
}

type service struct {
	users userRepo.UserRepository
}

func NewService(users userRepo.UserRepository) Service {
	return &service{users: users}
}

func (s *service) ListUsers(ctx context.Context, role string, page, limit int) (*adminDto.ListUsersResponse, error) {
	if !policy.Allowed(role, policy.ActionManageUsers) {
		return nil, apperror.ErrForbidden
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := s.users.FindAll(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	items := make([]adminDto.UserItem, 0, len(users))
	for _, u := range users {
		item := adminDto.UserItem{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		}
		if u.Alumni != nil {
			item.MatricNo = &u.Alumni.MatricNo
			item.Department = &u.Alumni.Department
			item.GraduationYear = &u.Alumni.GraduationYear
		}
		items = append(items, item)
	}

	return &adminDto.ListUsersResponse{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: total,
	}, nil
}

func (s *service) UpdateUserRole(ctx context.Context, actorID uuid.UUID, actorRole string, targetID uuid.UUID, newRole string) (*adminDto.UpdateRoleResponse, error) {
	if !policy.Allowed(actorRole, policy.ActionManageUsers) {
		return nil, apperror.ErrForbidden
	}

	if !entity.ValidRole(newRole) {
		return nil, apperror.NewValidation(map[string]string{
			"role": "role must be one of ADMIN, MODERATOR, MEMBER",
		})
	}

	// Admins cannot change their own role, which prevents locking every
	// admin out of the system.
	if actorID == targetID {
		return nil, fmt.Errorf("you cannot change your own role: %w", apperror.ErrForbidden)
	}

	if _, err := s.users.FindByID(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if err := s.users.UpdateRole(ctx, targetID, newRole); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	return &adminDto.UpdateRoleResponse{
		ID:      targetID,
		Role:    newRole,
		Message: "Role updated.",
	}, nil
}
