package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EventStatusOpen      = "OPEN"
	EventStatusClosed    = "CLOSED"
	EventStatusCancelled = "CANCELLED"

	RSVPStatusGoing = "GOING"
)

type Event struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"size:180;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	Location    *string    `gorm:"size:180" json:"location,omitempty"`
	City        *string    `gorm:"size:120;index" json:"city,omitempty"`
	StartAt     time.Time  `gorm:"not null;index" json:"start_at"`
	EndAt       *time.Time `json:"end_at,omitempty"`
	Capacity    *int       `json:"capacity,omitempty"`
	Status      string     `gorm:"size:20;not null;default:OPEN" json:"status"`
	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"created_by_id,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// EventRSVP holds at most one row per (event, alumnus) pair; the unique
// index backs the idempotent upsert-ignore on join.
type EventRSVP struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_rsvps_event_alumni;index" json:"event_id"`
	AlumniID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_rsvps_event_alumni;index" json:"alumni_id"`
	Status    string    `gorm:"size:20;not null;default:GOING" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *EventRSVP) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
