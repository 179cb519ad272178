package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserItem struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	MatricNo       *string   `json:"matricNo,omitempty"`
	Department     *string   `json:"department,omitempty"`
	GraduationYear *int      `json:"graduationYear,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type ListUsersResponse struct {
	Items []UserItem `json:"items"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
	Total int64      `json:"total"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=ADMIN MODERATOR MEMBER"`
}

type UpdateRoleResponse struct {
	ID      uuid.UUID `json:"id"`
	Role    string    `json:"role"`
	Message string    `json:"message"`
}
