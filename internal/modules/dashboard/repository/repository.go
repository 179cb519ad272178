package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gsualumni/alumninet/internal/entity"
)

// Counts is the raw tally backing the admin overview.
type Counts struct {
	TotalUsers             int64
	TotalAlumni            int64
	PendingJobs            int64
	PendingAccomplishments int64
	UpcomingEvents         int64
	ActiveJobs             int64
}

// MemberCounts backs the member dashboard stat cards.
type MemberCounts struct {
	MyJobs            int64
	MyAccomplishments int64
	NetworkSize       int64
}

type Repository interface {
	// Overview gathers all counters in one transaction so the numbers are
	// consistent with each other.
	Overview(ctx context.Context, now time.Time) (*Counts, error)
	// MemberStats tallies a member's own content plus the size of the rest
	// of the network.
	MemberStats(ctx context.Context, alumniID uuid.UUID) (*MemberCounts, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Overview(ctx context.Context, now time.Time) (*Counts, error) {
	var counts Counts

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.User{}).Count(&counts.TotalUsers).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.Alumni{}).Count(&counts.TotalAlumni).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.Job{}).
			Where("is_approved = ? AND is_active = ?", false, true).
			Count(&counts.PendingJobs).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.Job{}).
			Where("is_approved = ? AND is_active = ?", true, true).
			Count(&counts.ActiveJobs).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.Accomplishment{}).
			Where("is_approved = ?", false).
			Count(&counts.PendingAccomplishments).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Event{}).
			Where("start_at >= ? AND status <> ?", now, entity.EventStatusCancelled).
			Count(&counts.UpcomingEvents).Error
	})
	if err != nil {
		return nil, err
	}

	return &counts, nil
}

func (r *repository) MemberStats(ctx context.Context, alumniID uuid.UUID) (*MemberCounts, error) {
	var counts MemberCounts

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Job{}).
			Where("poster_id = ?", alumniID).
			Count(&counts.MyJobs).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.Accomplishment{}).
			Where("alumni_id = ?", alumniID).
			Count(&counts.MyAccomplishments).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Alumni{}).
			Where("id <> ?", alumniID).
			Count(&counts.NetworkSize).Error
	})
	if err != nil {
		return nil, err
	}

	return &counts, nil
}
