package dto

import (
	"time"

	"github.com/google/uuid"
)

type ListEventsFilter struct {
	Query string `form:"q"`
	City  string `form:"city"`
}

type EventItem struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	City        *string    `json:"city,omitempty"`
	StartAt     time.Time  `json:"startAt"`
	EndAt       *time.Time `json:"endAt,omitempty"`
	Capacity    *int       `json:"capacity,omitempty"`
	Status      string     `json:"status"`
	RSVPCount   int        `json:"rsvpCount"`
	IsGoing     bool       `json:"isGoing"`
	SpotsLeft   *int       `json:"spotsLeft,omitempty"`
}

// EventStats summarises the full upcoming set, irrespective of any
// filter applied to the listing itself.
type EventStats struct {
	UpcomingEvents  int `json:"upcomingEvents"`
	MyRsvps         int `json:"myRsvps"`
	ThisMonthEvents int `json:"thisMonthEvents"`
}

type ListEventsResponse struct {
	Items  []EventItem `json:"items"`
	Cities []string    `json:"cities"`
	Stats  EventStats  `json:"stats"`
}

type CreateEventRequest struct {
	Title       string  `json:"title" binding:"required,min=4,max=180"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Location    *string `json:"location" binding:"omitempty,max=180"`
	City        *string `json:"city" binding:"omitempty,max=120"`
	StartAt     string  `json:"startAt" binding:"required"`
	EndAt       *string `json:"endAt" binding:"omitempty"`
	Capacity    *int    `json:"capacity" binding:"omitempty,min=1,max=100000"`
}

type RSVPResponse struct {
	EventID   uuid.UUID `json:"eventId"`
	Going     bool      `json:"going"`
	RSVPCount int       `json:"rsvpCount"`
	Message   string    `json:"message"`
}
