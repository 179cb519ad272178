package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin     = "ADMIN"
	RoleModerator = "MODERATOR"
	RoleMember    = "MEMBER"
)

const (
	AlumniStatusActive    = "ACTIVE"
	AlumniStatusSuspended = "SUSPENDED"
	AlumniStatusInactive  = "INACTIVE"
)

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleModerator, RoleMember:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:120;not null" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone        *string   `gorm:"size:30" json:"phone,omitempty"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:MEMBER" json:"role"`
	IsVerified   bool      `gorm:"not null;default:false" json:"is_verified"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	Alumni       *Alumni   `gorm:"constraint:OnDelete:CASCADE" json:"alumni,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Alumni is the alumni-specific identity record, owned 1:1 by a User.
type Alumni struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User           User      `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	MatricNo       string    `gorm:"size:60;uniqueIndex;not null" json:"matric_no"`
	Department     string    `gorm:"size:120;not null" json:"department"`
	GraduationYear int       `gorm:"not null" json:"graduation_year"`
	Status         string    `gorm:"size:20;not null;default:ACTIVE" json:"status"`
	Employer       *string   `gorm:"size:180" json:"employer,omitempty"`
	JobTitle       *string   `gorm:"size:180" json:"job_title,omitempty"`
	CurrentCity    *string   `gorm:"size:120" json:"current_city,omitempty"`
	Skills         *string   `gorm:"type:text" json:"skills,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (a *Alumni) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
