package dto

import "github.com/google/uuid"

type CreateJobRequest struct {
	Company      *string `json:"company" binding:"omitempty,max=120"`
	Title        string  `json:"title" binding:"required,min=4,max=180"`
	Description  string  `json:"description" binding:"required,min=20,max=5000"`
	Requirements *string `json:"requirements" binding:"omitempty,max=5000"`
	Location     *string `json:"location" binding:"omitempty,max=180"`
	SalaryRange  *string `json:"salaryRange" binding:"omitempty,max=120"`
	Deadline     *string `json:"deadline" binding:"omitempty"`
}

type SubmitJobResponse struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
}
