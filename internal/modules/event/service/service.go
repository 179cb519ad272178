package event

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gsualumni/alumninet/internal/entity"
	alumni "github.com/gsualumni/alumninet/internal/modules/alumni/service"
	eventDto "github.com/gsualumni/alumninet/internal/modules/event/dto"
	repo "github.com/gsualumni/alumninet/internal/modules/event/repository"
	"github.com/gsualumni/alumninet/internal/policy"
	"github.com/gsualumni/alumninet/pkg/apperror"
)

const (
	// Events stay listed and joinable for a day after they start, so
	// latecomers can still check in.
	graceWindow = 24 * time.Hour

	listLimit = 150
)

type Service interface {
	ListUpcoming(ctx context.Context, userID uuid.UUID, role string, filter eventDto.ListEventsFilter) (*eventDto.ListEventsResponse, error)
	RSVP(ctx context.Context, userID uuid.UUID, role string, eventID uuid.UUID) (*eventDto.RSVPResponse, error)
	CancelRSVP(ctx context.Context, userID uuid.UUID, role string, eventID uuid.UUID) (*eventDto.RSVPResponse, error)
	CreateEvent(ctx context.Context, userID uuid.UUID, role string, req eventDto.CreateEventRequest) (*entity.Event, error)
}

type service struct {
	events    repo.Repository
	alumniSvc alumni.Service
	now       func() time.Time
}

func NewService(events repo.Repository, alumniSvc alumni.Service) Service {
	return &service{events: events, alumniSvc: alumniSvc, now: time.Now}
}

func (s *service) ListUpcoming(ctx context.Context, userID uuid.UUID, role string, filter eventDto.ListEventsFilter) (*eventDto.ListEventsResponse, error) {
	if !policy.Allowed(role, policy.ActionRSVP) {
		return nil, apperror.ErrForbidden
	}

	profile, err := s.alumniSvc.EnsureProfile(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	since := s.now().Add(-graceWindow)
	rows, err := s.events.ListUpcoming(ctx, since, listLimit, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	// Text and city filters run over the bounded page rather than in SQL.
	q := strings.ToLower(strings.TrimSpace(filter.Query))
	city := strings.ToLower(strings.TrimSpace(filter.City))

	// Stats and the city list cover the whole fetched set, not the
	// filtered view.
	now := s.now()
	stats := eventDto.EventStats{UpcomingEvents: len(rows)}

	citySet := make(map[string]struct{})
	items := make([]eventDto.EventItem, 0, len(rows))
	for _, row := range rows {
		if row.City != nil && *row.City != "" {
			citySet[*row.City] = struct{}{}
		}
		if row.IsGoing {
			stats.MyRsvps++
		}
		if row.StartAt.Month() == now.Month() && row.StartAt.Year() == now.Year() {
			stats.ThisMonthEvents++
		}
		if q != "" && !matchesQuery(row, q) {
			continue
		}
		if city != "" && (row.City == nil || strings.ToLower(*row.City) != city) {
			continue
		}
		items = append(items, toItem(row))
	}

	cities := make([]string, 0, len(citySet))
	for c := range citySet {
		cities = append(cities, c)
	}
	sort.Strings(cities)

	return &eventDto.ListEventsResponse{Items: items, Cities: cities, Stats: stats}, nil
}

func (s *service) RSVP(ctx context.Context, userID uuid.UUID, role string, eventID uuid.UUID) (*eventDto.RSVPResponse, error) {
	if !policy.Allowed(role, policy.ActionRSVP) {
		return nil, apperror.ErrForbidden
	}

	profile, err := s.alumniSvc.EnsureProfile(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	snap, err := s.events.SnapshotForRSVP(ctx, eventID)
	if err != nil {
		return nil, err
	}

	// An event past its grace window has dropped out of the listing, so it
	// is treated as gone rather than merely closed.
	if snap.StartAt.Before(s.now().Add(-graceWindow)) {
		return nil, fmt.Errorf("event has already taken place: %w", apperror.ErrNotFound)
	}
	if snap.Status != entity.EventStatusOpen {
		return nil, fmt.Errorf("event is not open for RSVPs: %w", apperror.ErrEventClosed)
	}

	// Capacity is checked before the insert, not atomically with it. Two
	// racing joins on the last seat can both pass the check and briefly
	// overfill the event. Accepted: attendance is advisory, not ticketing.
	if snap.Capacity != nil && snap.RSVPCount >= *snap.Capacity {
		return nil, fmt.Errorf("event is full: %w", apperror.ErrCapacityReached)
	}

	inserted, err := s.events.CreateRSVP(ctx, eventID, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to save RSVP: %w", err)
	}

	count, err := s.events.CountRSVPs(ctx, eventID)
	if err != nil {
		return nil, err
	}

	message := "You are on the list. See you there!"
	if !inserted {
		message = "You had already joined this event."
	}

	return &eventDto.RSVPResponse{
		EventID:   eventID,
		Going:     true,
		RSVPCount: count,
		Message:   message,
	}, nil
}

func (s *service) CancelRSVP(ctx context.Context, userID uuid.UUID, role string, eventID uuid.UUID) (*eventDto.RSVPResponse, error) {
	if !policy.Allowed(role, policy.ActionRSVP) {
		return nil, apperror.ErrForbidden
	}

	profile, err := s.alumniSvc.EnsureProfile(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	// Cancelling an RSVP that never existed is fine.
	if err := s.events.DeleteRSVP(ctx, eventID, profile.ID); err != nil {
		return nil, fmt.Errorf("failed to cancel RSVP: %w", err)
	}

	count, err := s.events.CountRSVPs(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return &eventDto.RSVPResponse{
		EventID:   eventID,
		Going:     false,
		RSVPCount: count,
		Message:   "Your RSVP was cancelled.",
	}, nil
}

func (s *service) CreateEvent(ctx context.Context, userID uuid.UUID, role string, req eventDto.CreateEventRequest) (*entity.Event, error) {
	if !policy.Allowed(role, policy.ActionManageEvents) {
		return nil, apperror.ErrForbidden
	}

	startAt, err := parseEventTime(req.StartAt)
	if err != nil {
		return nil, apperror.NewValidation(map[string]string{
			"startAt": "startAt must be an RFC 3339 timestamp",
		})
	}

	var endAt *time.Time
	if req.EndAt != nil && strings.TrimSpace(*req.EndAt) != "" {
		parsed, err := parseEventTime(*req.EndAt)
		if err != nil || !parsed.After(startAt) {
			return nil, apperror.NewValidation(map[string]string{
				"endAt": "endAt must be an RFC 3339 timestamp after startAt",
			})
		}
		endAt = &parsed
	}

	event := &entity.Event{
		Title:       strings.TrimSpace(req.Title),
		Description: trimPtr(req.Description),
		Location:    trimPtr(req.Location),
		City:        trimPtr(req.City),
		StartAt:     startAt,
		EndAt:       endAt,
		Capacity:    req.Capacity,
		Status:      entity.EventStatusOpen,
		CreatedByID: &userID,
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

func matchesQuery(row repo.EventRow, q string) bool {
	if strings.Contains(strings.ToLower(row.Title), q) {
		return true
	}
	if row.Description != nil && strings.Contains(strings.ToLower(*row.Description), q) {
		return true
	}
	if row.Location != nil && strings.Contains(strings.ToLower(*row.Location), q) {
		return true
	}
	if row.City != nil && strings.Contains(strings.ToLower(*row.City), q) {
		return true
	}
	return false
}

func toItem(row repo.EventRow) eventDto.EventItem {
	item := eventDto.EventItem{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Location:    row.Location,
		City:        row.City,
		StartAt:     row.StartAt,
		EndAt:       row.EndAt,
		Capacity:    row.Capacity,
		Status:      row.Status,
		RSVPCount:   row.RSVPCount,
		IsGoing:     row.IsGoing,
	}
	if row.Capacity != nil {
		left := *row.Capacity - row.RSVPCount
		if left < 0 {
			left = 0
		}
		item.SpotsLeft = &left
	}
	return item
}

func parseEventTime(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04"} {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable time %q", raw)
}

func trimPtr(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
