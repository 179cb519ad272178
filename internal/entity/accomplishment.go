package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AccomplishmentWedding       = "WEDDING"
	AccomplishmentPromotion     = "PROMOTION"
	AccomplishmentNewEmployment = "NEW_EMPLOYMENT"
	AccomplishmentBirth         = "BIRTH"
	AccomplishmentOther         = "OTHER"
)

// Accomplishment is a shared alumni achievement. Unlike Job, rejection
// hard-deletes the row.
type Accomplishment struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AlumniID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"alumni_id"`
	Alumni       Alumni     `gorm:"constraint:OnDelete:CASCADE" json:"alumni"`
	Type         string     `gorm:"size:30;not null" json:"type"`
	Title        string     `gorm:"size:180;not null" json:"title"`
	Description  *string    `gorm:"type:text" json:"description,omitempty"`
	ImageURL     *string    `gorm:"size:1000" json:"image_url,omitempty"`
	Date         *time.Time `json:"date,omitempty"`
	IsApproved   bool       `gorm:"not null;default:false;index" json:"is_approved"`
	ApprovedByID *uuid.UUID `gorm:"type:uuid" json:"approved_by_id,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (a *Accomplishment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
