package event

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gsualumni/alumninet/internal/entity"
	"github.com/gsualumni/alumninet/pkg/apperror"
)

// EventRow is an event joined with its attendance from the caller's point
// of view.
type EventRow struct {
	entity.Event
	RSVPCount int  `json:"rsvp_count"`
	IsGoing   bool `json:"is_going"`
}

// RSVPSnapshot is the state the service inspects before admitting a new
// attendee.
type RSVPSnapshot struct {
	EventID   uuid.UUID
	Status    string
	StartAt   time.Time
	Capacity  *int
	RSVPCount int
}

type Repository interface {
	// ListUpcoming returns events starting at or after since, soonest first,
	// each carrying its attendance count and whether alumniID already joined.
	ListUpcoming(ctx context.Context, since time.Time, limit int, alumniID uuid.UUID) ([]EventRow, error)
	// SnapshotForRSVP reads the fields the capacity check needs.
	SnapshotForRSVP(ctx context.Context, eventID uuid.UUID) (*RSVPSnapshot, error)
	// CreateRSVP inserts the attendance row, silently keeping the existing
	// one when the pair already exists. Returns whether a row was inserted.
	CreateRSVP(ctx context.Context, eventID, alumniID uuid.UUID) (bool, error)
	DeleteRSVP(ctx context.Context, eventID, alumniID uuid.UUID) error
	CountRSVPs(ctx context.Context, eventID uuid.UUID) (int, error)
	Create(ctx context.Context, event *entity.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	CountUpcoming(ctx context.Context, since time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListUpcoming(ctx context.Context, since time.Time, limit int, alumniID uuid.UUID) ([]EventRow, error) {
	var rows []EventRow

	query := `
		SELECT e.*,
			(SELECT COUNT(*) FROM event_rsvps r WHERE r.event_id = e.id) AS rsvp_count,
			EXISTS (
				SELECT 1 FROM event_rsvps r
				WHERE r.event_id = e.id AND r.alumni_id = ?
			) AS is_going
		FROM events e
		WHERE e.start_at >= ? AND e.status <> 'CANCELLED'
		ORDER BY e.start_at ASC
		LIMIT ?
	`

	if err := r.db.WithContext(ctx).Raw(query, alumniID, since, limit).Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *repository) SnapshotForRSVP(ctx context.Context, eventID uuid.UUID) (*RSVPSnapshot, error) {
	var event entity.Event
	if err := r.db.WithContext(ctx).Where("id = ?", eventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	count, err := r.CountRSVPs(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return &RSVPSnapshot{
		EventID:   event.ID,
		Status:    event.Status,
		StartAt:   event.StartAt,
		Capacity:  event.Capacity,
		RSVPCount: count,
	}, nil
}

func (r *repository) CreateRSVP(ctx context.Context, eventID, alumniID uuid.UUID) (bool, error) {
	rsvp := &entity.EventRSVP{
		EventID:  eventID,
		AlumniID: alumniID,
		Status:   entity.RSVPStatusGoing,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "alumni_id"}},
			DoNothing: true,
		}).
		Create(rsvp)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *repository) DeleteRSVP(ctx context.Context, eventID, alumniID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("event_id = ? AND alumni_id = ?", eventID, alumniID).
		Delete(&entity.EventRSVP{}).Error
}

func (r *repository) CountRSVPs(ctx context.Context, eventID uuid.UUID) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.EventRSVP{}).
		Where("event_id = ?", eventID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *repository) Create(ctx context.Context, event *entity.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	var event entity.Event
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *repository) CountUpcoming(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Event{}).
		Where("start_at >= ? AND status <> ?", since, entity.EventStatusCancelled).
		Count(&count).Error
	return count, err
}
