package dto

import (
	"github.com/google/uuid"
)

type SearchFilter struct {
	Department string `form:"dept"`
	Year       int    `form:"year"`
	City       string `form:"city"`
	Employer   string `form:"employer"`
	Skills     string `form:"skills"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

type AlumniItem struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	MatricNo       string    `json:"matric_no"`
	Department     string    `json:"department"`
	GraduationYear int       `json:"graduation_year"`
	Status         string    `json:"status"`
	Employer       *string   `json:"employer,omitempty"`
	JobTitle       *string   `json:"job_title,omitempty"`
	CurrentCity    *string   `json:"current_city,omitempty"`
	Skills         *string   `json:"skills,omitempty"`
}

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	Limit       int   `json:"limit"`
}

type SearchResponse struct {
	Data []AlumniItem   `json:"data"`
	Meta PaginationMeta `json:"meta"`
}
