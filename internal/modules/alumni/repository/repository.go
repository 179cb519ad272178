package alumni

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gsualumni/alumninet/internal/entity"
)

// SearchFilter narrows directory queries; string filters match as
// case-insensitive substrings, Year matches exactly when non-zero.
type SearchFilter struct {
	Department string
	Year       int
	City       string
	Employer   string
	Skills     string
}

type Repository interface {
	Create(ctx context.Context, alumni *entity.Alumni) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Alumni, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Alumni, error)
	Search(ctx context.Context, filter SearchFilter, offset, limit int) ([]*entity.Alumni, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, alumni *entity.Alumni) error {
	return r.db.WithContext(ctx).Create(alumni).Error
}

func (r *repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Alumni, error) {
	var alumni entity.Alumni
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&alumni).Error; err != nil {
		return nil, err
	}
	return &alumni, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Alumni, error) {
	var alumni entity.Alumni
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&alumni).Error; err != nil {
		return nil, err
	}
	return &alumni, nil
}

func (r *repository) Search(ctx context.Context, filter SearchFilter, offset, limit int) ([]*entity.Alumni, int64, error) {
	var rows []*entity.Alumni
	var total int64

	query := r.db.WithContext(ctx).Preload("User")

	if filter.Department != "" {
		query = query.Where("department ILIKE ?", "%"+filter.Department+"%")
	}
	if filter.Year > 0 {
		query = query.Where("graduation_year = ?", filter.Year)
	}
	if filter.City != "" {
		query = query.Where("current_city ILIKE ?", "%"+filter.City+"%")
	}
	if filter.Employer != "" {
		query = query.Where("employer ILIKE ?", "%"+filter.Employer+"%")
	}
	if filter.Skills != "" {
		query = query.Where("skills ILIKE ?", "%"+filter.Skills+"%")
	}

	if err := query.Model(&entity.Alumni{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}
