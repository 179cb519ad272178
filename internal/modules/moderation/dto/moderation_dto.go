package dto

import (
	"time"

	"github.com/google/uuid"
)

type PendingJobItem struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     *string    `json:"company,omitempty"`
	Description string     `json:"description"`
	Location    *string    `json:"location,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	PosterName  string     `json:"posterName"`
	SubmittedAt time.Time  `json:"submittedAt"`
}

type PendingAccomplishmentItem struct {
	ID          uuid.UUID  `json:"id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	ImageURL    *string    `json:"imageUrl,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	OwnerName   string     `json:"ownerName"`
	SubmittedAt time.Time  `json:"submittedAt"`
}

type QueueMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type PendingJobsResponse struct {
	Items []PendingJobItem `json:"items"`
	Meta  QueueMeta        `json:"meta"`
}

type PendingAccomplishmentsResponse struct {
	Items []PendingAccomplishmentItem `json:"items"`
	Meta  QueueMeta                   `json:"meta"`
}

type ModerationResult struct {
	ID      uuid.UUID `json:"id"`
	Message string    `json:"message"`
}
