package job

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gsualumni/alumninet/internal/entity"
)

type Repository interface {
	Create(ctx context.Context, job *entity.Job) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	// FindPending returns unapproved active jobs, newest first.
	FindPending(ctx context.Context, offset, limit int) ([]*entity.Job, int64, error)
	// SetApproved stamps the approver; already-approved rows converge to the
	// same state.
	SetApproved(ctx context.Context, id uuid.UUID, approverID uuid.UUID) error
	// Deactivate soft-rejects a job. Unknown ids are a no-op.
	Deactivate(ctx context.Context, id uuid.UUID) error
	FindByPoster(ctx context.Context, posterID uuid.UUID, limit int) ([]*entity.Job, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, job *entity.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	var job entity.Job
	if err := r.db.WithContext(ctx).
		Preload("Poster").
		Preload("Poster.User").
		Where("id = ?", id).
		First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *repository) FindPending(ctx context.Context, offset, limit int) ([]*entity.Job, int64, error) {
	var jobs []*entity.Job
	var total int64

	query := r.db.WithContext(ctx).
		Preload("Poster").
		Preload("Poster.User").
		Where("is_approved = ? AND is_active = ?", false, true)

	if err := query.Model(&entity.Job{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&jobs).Error; err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *repository) SetApproved(ctx context.Context, id uuid.UUID, approverID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entity.Job{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_approved":    true,
			"approved_by_id": approverID,
		}).Error
}

func (r *repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entity.Job{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *repository) FindByPoster(ctx context.Context, posterID uuid.UUID, limit int) ([]*entity.Job, error) {
	var jobs []*entity.Job
	if err := r.db.WithContext(ctx).
		Where("poster_id = ?", posterID).
		Order("created_at DESC").
		Limit(limit).
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}
