package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Job is a posted job opening. Rejection deactivates the row instead of
// deleting it so the moderation trail survives.
type Job struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PosterID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"poster_id"`
	Poster       Alumni     `gorm:"foreignKey:PosterID;constraint:OnDelete:CASCADE" json:"poster"`
	Company      *string    `gorm:"size:120" json:"company,omitempty"`
	Title        string     `gorm:"size:180;not null" json:"title"`
	Description  string     `gorm:"type:text;not null" json:"description"`
	Requirements *string    `gorm:"type:text" json:"requirements,omitempty"`
	Location     *string    `gorm:"size:180" json:"location,omitempty"`
	SalaryRange  *string    `gorm:"size:120" json:"salary_range,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	IsApproved   bool       `gorm:"not null;default:false;index" json:"is_approved"`
	IsActive     bool       `gorm:"not null;default:true;index" json:"is_active"`
	ApprovedByID *uuid.UUID `gorm:"type:uuid" json:"approved_by_id,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
