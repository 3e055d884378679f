package auth

import (
	"github.com/openhouselabs/openhouse-backend/internal/agents"
)

// RegisterRequest is the payload for agent signup.
type RegisterRequest struct {
	Name          string  `json:"name" validate:"required,min=2,max=100"`
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=6,max=128"`
	Phone         *string `json:"phone,omitempty"`
	LicenseNumber *string `json:"licenseNumber,omitempty"`
}

// LoginRequest is the payload for agent login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the signed token and the public agent projection.
type AuthResponse struct {
	Token string             `json:"token"`
	Agent agents.PublicAgent `json:"agent"`
}
