package event

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gsualumni/alumninet/internal/entity"
	alumniDto "github.com/gsualumni/alumninet/internal/modules/alumni/dto"
	eventDto "github.com/gsualumni/alumninet/internal/modules/event/dto"
	repo "github.com/gsualumni/alumninet/internal/modules/event/repository"
	"github.com/gsualumni/alumninet/pkg/apperror"
)

type rsvpKey struct {
	eventID  uuid.UUID
	alumniID uuid.UUID
}

type fakeEventRepo struct {
	events map[uuid.UUID]*entity.Event
	rsvps  map[rsvpKey]struct{}
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events: make(map[uuid.UUID]*entity.Event),
		rsvps:  make(map[rsvpKey]struct{}),
	}
}

func (f *fakeEventRepo) ListUpcoming(ctx context.Context, since time.Time, limit int, alumniID uuid.UUID) ([]repo.EventRow, error) {
	var rows []repo.EventRow
	for _, e := range f.events {
		if e.StartAt.Before(since) || e.Status == entity.EventStatusCancelled {
			continue
		}
		count, _ := f.CountRSVPs(ctx, e.ID)
		_, going := f.rsvps[rsvpKey{e.ID, alumniID}]
		rows = append(rows, repo.EventRow{Event: *e, RSVPCount: count, IsGoing: going})
		if len(rows) >= limit {
			break
		}
	}
	return rows, nil
}

func (f *fakeEventRepo) SnapshotForRSVP(ctx context.Context, eventID uuid.UUID) (*repo.RSVPSnapshot, error) {
	e, ok := f.events[eventID]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	count, _ := f.CountRSVPs(ctx, eventID)
	return &repo.RSVPSnapshot{
		EventID:   e.ID,
		Status:    e.Status,
		StartAt:   e.StartAt,
		Capacity:  e.Capacity,
		RSVPCount: count,
	}, nil
}

func (f *fakeEventRepo) CreateRSVP(ctx context.Context, eventID, alumniID uuid.UUID) (bool, error) {
	key := rsvpKey{eventID, alumniID}
	if _, exists := f.rsvps[key]; exists {
		return false, nil
	}
	f.rsvps[key] = struct{}{}
	return true, nil
}

func (f *fakeEventRepo) DeleteRSVP(ctx context.Context, eventID, alumniID uuid.UUID) error {
	delete(f.rsvps, rsvpKey{eventID, alumniID})
	return nil
}

func (f *fakeEventRepo) CountRSVPs(ctx context.Context, eventID uuid.UUID) (int, error) {
	count := 0
	for key := range f.rsvps {
		if key.eventID == eventID {
			count++
		}
	}
	return count, nil
}

func (f *fakeEventRepo) Create(ctx context.Context, event *entity.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	if e, ok := f.events[id]; ok {
		return e, nil
	}
	return nil, apperror.ErrNotFound
}

func (f *fakeEventRepo) CountUpcoming(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	for _, e := range f.events {
		if !e.StartAt.Before(since) && e.Status != entity.EventStatusCancelled {
			count++
		}
	}
	return count, nil
}

type fakeAlumniService struct {
	profiles map[uuid.UUID]*entity.Alumni
}

func newFakeAlumniService() *fakeAlumniService {
	return &fakeAlumniService{profiles: make(map[uuid.UUID]*entity.Alumni)}
}

func (f *fakeAlumniService) EnsureProfile(ctx context.Context, userID uuid.UUID, role string) (*entity.Alumni, error) {
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	if role != entity.RoleAdmin {
		return nil, apperror.ErrProfileRequired
	}
	p := &entity.Alumni{ID: uuid.New(), UserID: userID}
	f.profiles[userID] = p
	return p, nil
}

func (f *fakeAlumniService) Search(ctx context.Context, role string, filter alumniDto.SearchFilter) (*alumniDto.SearchResponse, error) {
	return nil, nil
}

func newMember(alumniSvc *fakeAlumniService) uuid.UUID {
	userID := uuid.New()
	alumniSvc.profiles[userID] = &entity.Alumni{ID: uuid.New(), UserID: userID}
	return userID
}

func openEvent(events *fakeEventRepo, startAt time.Time, capacity *int) *entity.Event {
	e := &entity.Event{
		ID:       uuid.New(),
		Title:    "Alumni Career Mixer",
		StartAt:  startAt,
		Capacity: capacity,
		Status:   entity.EventStatusOpen,
	}
	events.events[e.ID] = e
	return e
}

func intPtr(v int) *int { return &v }

func TestRSVPIsIdempotent(t *testing.T) {
	events := newFakeEventRepo()
	alumniSvc := newFakeAlumniService()
	userID := newMember(alumniSvc)
	svc := NewService(events, alumniSvc)

	e := openEvent(events, time.Now().Add(48*time.Hour), intPtr(10))

	first, err := svc.RSVP(context.Background(), userID, entity.RoleMember, e.ID)
	require.NoError(t, err)
	assert.True(t, first.Going)
	assert.Equal(t, 1, first.RSVPCount)

	second, err := svc.RSVP(context.Background(), userID, entity.RoleMember, e.ID)
	require.NoError(t, err)
	assert.True(t, second.Going)
	assert.Equal(t, 1, second.RSVPCount, "joining twice must not add a second row")
}

func TestRSVPCapacityReached(t *testing.T) {
	events := newFakeEventRepo()
	alumniSvc := newFakeAlumniService()
	svc := NewService(events, alumniSvc)

	e := openEvent(events, time.Now().Add(48*time.Hour), intPtr(2))

	for i := 0; i < 2; i++ {
		userID := newMember(alumniSvc)
		_, err := svc.RSVP(context.Background(), userID, entity.RoleMember, e.ID)
		require.NoError(t, err)
	}

	lateUser := newMember(alumniSvc)
	_, err := svc.RSVP(context.Background(), lateUser, entity.RoleMember, e.ID)
	assert.ErrorIs(t, err, apperror.ErrCapacityReached)
}

func TestRSVPUnlimitedWhenNoCapacity(t *testing.T) {
	events := newFakeEventRepo()
	alumniSvc := newFakeAlumniService()
	svc := NewService(events, alumniSvc)

	e := openEvent(events, time.Now().Add(48*time.Hour), nil)

	for i := 0; i < 5; i++ {
		userID := newMember(alumniSvc)
		_, err := svc.RSVP(context.Background(), userID, entity.RoleMember, e.ID)
		require.NoError(t, err)
	}
}

func TestRSVPClosedAndCancelledEvents(t *testing.T) {
	events := newFakeEventRepo()
	alumniSvc := newFakeAlumniService()
	userID := newMember(alumniSvc)
	svc := NewService(events, alumniSvc)

	closed := openEvent(events, time.Now().Add(48*time.Hour), nil)
	closed.Status = entity.EventStatusClosed

	cancelled := openEvent(events, time.Now().Add(48*time.Hour), nil)
	cancelled.Status = entity.EventStatusCancelled

	_, err := svc.RSVP(context.Background(), userID, entity.RoleMember, closed.ID)
	assert.ErrorIs(t, err, apperror.ErrEventClosed)

	_, err = svc.RSVP(context.Background(), userID, entity.RoleMember, cancelled.ID)
	assert.ErrorIs(t, err, apperror.ErrEventClosed)
}

func TestRSVPWithinGraceWindow(t *testing.T) {
	events := newFakeEventRepo()
	alumniSvc := newFakeAlumniService()
	userID := newMember(alumniSvc)
	svc := NewService(events, alumniSvc)

	// Started two hours ago, still inside the one-day window.
	recent := openEvent(events, time.Now().Add(-2*time.Hour), nil)
	_, err := svc.RSVP(context.Background(), userID, entity.RoleMember, recent.ID)
	assert.NoError(t, err)

	// Started two days ago, window passed. The event is no longer listed,
	// so it reads as missing rather than closed.
	stale := openEvent(events, time.Now().Add(-48*time.Hour), nil)
	_, err = svc.RSVP(context.Background(), userID, entity.RoleMember, stale.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestRSVPUnknownEvent(t *testing.T) {
	events := newFakeEventRepo()
	alumniSvc := newFakeAlumniService()
	userID := newMember(alumniSvc)
	svc := NewService(events, alumniSvc)

	_, err := svc.RSVP(context.Background(), userID, entity.RoleMember, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCancelRSVP(t *testing.T) {
	events := newFakeEventRepo()
	alumniSvc := newFakeAlumniService()
	userID := newMember(alumniSvc)
	svc := NewService(events, alumniSvc)

	e := openEvent(events, time.Now().Add(48*time.Hour), nil)

	_, err := svc.RSVP(context.Background(), userID, entity.RoleMember, e.ID)
	require.NoError(t, err)

	resp, err := svc.CancelRSVP(context.Background(), userID, entity.RoleMember, e.ID)
	require.NoError(t, err)
	assert.False(t, resp.Going)
	assert.Equal(t, 0, resp.RSVPCount)

	// Cancelling again is a no-op.
	_, err = svc.CancelRSVP(context.Background(), userID, entity.RoleMember, e.ID)
	assert.NoError(t, err)
}

func TestListUpcomingFilters(t *testing.T) {
	events := newFakeEventRepo()
	alumniSvc := newFakeAlumniService()
	userID := newMember(alumniSvc)
	svc := NewService(events, alumniSvc)

	atlanta := "Atlanta"
	savannah := "Savannah"

	mixer := openEvent(events, time.Now().Add(24*time.Hour), nil)
	mixer.City = &atlanta

	panelTalk := openEvent(events, time.Now().Add(48*time.Hour), nil)
	panelTalk.Title = "Founder Stories Panel"
	panelTalk.City = &savannah

	resp, err := svc.ListUpcoming(context.Background(), userID, entity.RoleMember, eventDto.ListEventsFilter{City: "savannah"})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Founder Stories Panel", resp.Items[0].Title)
	// Cities come from the full page, not the filtered slice.
	assert.ElementsMatch(t, []string{"Atlanta", "Savannah"}, resp.Cities)

	resp, err = svc.ListUpcoming(context.Background(), userID, entity.RoleMember, eventDto.ListEventsFilter{Query: "founder"})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Founder Stories Panel", resp.Items[0].Title)
}

func TestListUpcomingStats(t *testing.T) {
	events := newFakeEventRepo()
	alumniSvc := newFakeAlumniService()
	userID := newMember(alumniSvc)
	svc := NewService(events, alumniSvc)

	thisMonth := openEvent(events, time.Now(), nil)
	// Forty days out is always a different calendar month.
	openEvent(events, time.Now().Add(40*24*time.Hour), nil)

	_, err := svc.RSVP(context.Background(), userID, entity.RoleMember, thisMonth.ID)
	require.NoError(t, err)

	resp, err := svc.ListUpcoming(context.Background(), userID, entity.RoleMember, eventDto.ListEventsFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Stats.UpcomingEvents)
	assert.Equal(t, 1, resp.Stats.MyRsvps)
	assert.Equal(t, 1, resp.Stats.ThisMonthEvents)

	// Stats cover the full upcoming set even when the filter hides it.
	resp, err = svc.ListUpcoming(context.Background(), userID, entity.RoleMember, eventDto.ListEventsFilter{Query: "no such event"})
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 2, resp.Stats.UpcomingEvents)
	assert.Equal(t, 1, resp.Stats.MyRsvps)
}

func TestListUpcomingMarksAttendance(t *testing.T) {
	events := newFakeEventRepo()
	alumniSvc := newFakeAlumniService()
	userID := newMember(alumniSvc)
	svc := NewService(events, alumniSvc)

	e := openEvent(events, time.Now().Add(24*time.Hour), intPtr(50))

	_, err := svc.RSVP(context.Background(), userID, entity.RoleMember, e.ID)
	require.NoError(t, err)

	resp, err := svc.ListUpcoming(context.Background(), userID, entity.RoleMember, eventDto.ListEventsFilter{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].IsGoing)
	assert.Equal(t, 1, resp.Items[0].RSVPCount)
	require.NotNil(t, resp.Items[0].SpotsLeft)
	assert.Equal(t, 49, *resp.Items[0].SpotsLeft)
}

func TestCreateEventRequiresAdmin(t *testing.T) {
	events := newFakeEventRepo()
	svc := NewService(events, newFakeAlumniService())

	req := eventDto.CreateEventRequest{
		Title:   "Tech Leadership Workshop",
		StartAt: time.Now().Add(72 * time.Hour).Format(time.RFC3339),
	}

	_, err := svc.CreateEvent(context.Background(), uuid.New(), entity.RoleMember, req)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	created, err := svc.CreateEvent(context.Background(), uuid.New(), entity.RoleAdmin, req)
	require.NoError(t, err)
	assert.Equal(t, entity.EventStatusOpen, created.Status)
}

func TestCreateEventRejectsBadTimes(t *testing.T) {
	events := newFakeEventRepo()
	svc := NewService(events, newFakeAlumniService())

	_, err := svc.CreateEvent(context.Background(), uuid.New(), entity.RoleAdmin, eventDto.CreateEventRequest{
		Title:   "Broken Event",
		StartAt: "whenever",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	start := time.Now().Add(72 * time.Hour)
	before := start.Add(-time.Hour).Format(time.RFC3339)
	_, err = svc.CreateEvent(context.Background(), uuid.New(), entity.RoleAdmin, eventDto.CreateEventRequest{
		Title:   "Broken Event",
		StartAt: start.Format(time.RFC3339),
		EndAt:   &before,
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}
