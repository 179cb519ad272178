package accomplishment

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gsualumni/alumninet/internal/entity"
)

type Repository interface {
	Create(ctx context.Context, acc *entity.Accomplishment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Accomplishment, error)
	// FindPending returns unapproved accomplishments, newest first.
	FindPending(ctx context.Context, offset, limit int) ([]*entity.Accomplishment, int64, error)
	SetApproved(ctx context.Context, id uuid.UUID, approverID uuid.UUID) error
	// Delete removes the row permanently. Unknown ids are a no-op.
	Delete(ctx context.Context, id uuid.UUID) error
	FindByAlumni(ctx context.Context, alumniID uuid.UUID, limit int) ([]*entity.Accomplishment, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, acc *entity.Accomplishment) error {
	return r.db.WithContext(ctx).Create(acc).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Accomplishment, error) {
	var acc entity.Accomplishment
	if err := r.db.WithContext(ctx).
		Preload("Alumni").
		Preload("Alumni.User").
		Where("id = ?", id).
		First(&acc).Error; err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *repository) FindPending(ctx context.Context, offset, limit int) ([]*entity.Accomplishment, int64, error) {
	var accs []*entity.Accomplishment
	var total int64

	query := r.db.WithContext(ctx).
		Preload("Alumni").
		Preload("Alumni.User").
		Where("is_approved = ?", false)

	if err := query.Model(&entity.Accomplishment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&accs).Error; err != nil {
		return nil, 0, err
	}

	return accs, total, nil
}

func (r *repository) SetApproved(ctx context.Context, id uuid.UUID, approverID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entity.Accomplishment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_approved":    true,
			"approved_by_id": approverID,
		}).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.Accomplishment{}).Error
}

func (r *repository) FindByAlumni(ctx context.Context, alumniID uuid.UUID, limit int) ([]*entity.Accomplishment, error) {
	var accs []*entity.Accomplishment
	if err := r.db.WithContext(ctx).
		Where("alumni_id = ?", alumniID).
		Order("created_at DESC").
		Limit(limit).
		Find(&accs).Error; err != nil {
		return nil, err
	}
	return accs, nil
}
