package dto

import "github.com/noah-isme/ibplan-go-api/internal/models"

// LoginRequest carries the credentials posted to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and the authenticated identity.
type LoginResponse struct {
	Token string          `json:"token"`
	User  models.Identity `json:"user"`
}

// UpdateSubjectsRequest replaces the identity's subject selection. An
// empty list is a valid selection.
type UpdateSubjectsRequest struct {
	Subjects []string `json:"subjects"`
}

// UpdateProgressRequest writes an explicit aggregate progress value.
type UpdateProgressRequest struct {
	Progress int `json:"progress" validate:"gte=0,lte=100"`
}

// ProfileResponse is the identity joined with its selected subjects.
type ProfileResponse struct {
	User              models.Identity  `json:"user"`
	Subjects          []models.Subject `json:"subjects"`
	AggregateProgress int              `json:"aggregate_progress"`
}
