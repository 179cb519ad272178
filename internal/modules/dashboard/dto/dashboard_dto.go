package dto

import (
	"time"

	"github.com/google/uuid"
)

type AdminOverview struct {
	TotalUsers             int64 `json:"totalUsers"`
	TotalAlumni            int64 `json:"totalAlumni"`
	PendingJobs            int64 `json:"pendingJobs"`
	PendingAccomplishments int64 `json:"pendingAccomplishments"`
	UpcomingEvents         int64 `json:"upcomingEvents"`
	ActiveJobs             int64 `json:"activeJobs"`
}

type MySubmission struct {
	ID         uuid.UUID `json:"id"`
	Kind       string    `json:"kind"`
	Title      string    `json:"title"`
	IsApproved bool      `json:"isApproved"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

type MemberStats struct {
	MyJobs            int64 `json:"myJobs"`
	MyAccomplishments int64 `json:"myAccomplishments"`
	NetworkSize       int64 `json:"networkSize"`
}

type ProfileSummary struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Department     string  `json:"department"`
	GraduationYear int     `json:"graduationYear"`
	Employer       *string `json:"employer,omitempty"`
	JobTitle       *string `json:"jobTitle,omitempty"`
	City           *string `json:"city,omitempty"`
}

type MemberOverview struct {
	Profile        ProfileSummary `json:"profile"`
	Stats          MemberStats    `json:"stats"`
	Submissions    []MySubmission `json:"submissions"`
	UpcomingEvents int64          `json:"upcomingEvents"`
	UnreadCount    int64          `json:"unreadCount"`
}
