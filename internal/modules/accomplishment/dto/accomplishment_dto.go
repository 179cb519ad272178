package dto

import "github.com/google/uuid"

type CreateAccomplishmentRequest struct {
	Type        string  `json:"type" binding:"required,oneof=WEDDING PROMOTION NEW_EMPLOYMENT BIRTH OTHER"`
	Title       string  `json:"title" binding:"required,min=4,max=180"`
	Description *string `json:"description" binding:"omitempty,min=10,max=3000"`
	ImageURL    *string `json:"imageUrl" binding:"omitempty,url,max=1000"`
	Date        *string `json:"date" binding:"omitempty"`
}

type SubmitAccomplishmentResponse struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
}
