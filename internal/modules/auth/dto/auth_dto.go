package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Name           string  `json:"name" binding:"required,min=2,max=120"`
	Email          string  `json:"email" binding:"required,email,max=255"`
	Password       string  `json:"password" binding:"required,min=8,max=72"`
	Phone          *string `json:"phone" binding:"omitempty,max=30"`
	MatricNo       string  `json:"matricNo" binding:"required,min=4,max=60"`
	Department     string  `json:"department" binding:"required,min=2,max=120"`
	GraduationYear int     `json:"graduationYear" binding:"required,min=1950,max=2100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

type AuthResponse struct {
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expiresAt"`
	User      AuthUser `json:"user"`
}

type MeResponse struct {
	User       AuthUser       `json:"user"`
	Profile    *ProfileDetail `json:"profile,omitempty"`
	HasProfile bool           `json:"hasProfile"`
}

type ProfileDetail struct {
	MatricNo       string  `json:"matricNo"`
	Department     string  `json:"department"`
	GraduationYear int     `json:"graduationYear"`
	Status         string  `json:"status"`
	Employer       *string `json:"employer,omitempty"`
	JobTitle       *string `json:"jobTitle,omitempty"`
	CurrentCity    *string `json:"currentCity,omitempty"`
	Skills         *string `json:"skills,omitempty"`
}
