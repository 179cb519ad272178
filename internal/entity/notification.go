package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationJobApproved            = "JOB_APPROVED"
	NotificationJobRejected            = "JOB_REJECTED"
	NotificationAccomplishmentApproved = "ACCOMPLISHMENT_APPROVED"
	NotificationAccomplishmentRejected = "ACCOMPLISHMENT_REJECTED"
)

type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	ActorID   *uuid.UUID `gorm:"type:uuid" json:"actor_id,omitempty"`
	Actor     *User      `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
	Type      string     `gorm:"size:50;not null" json:"type"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	RefID     *uuid.UUID `gorm:"type:uuid" json:"ref_id,omitempty"`
	IsRead    bool       `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
