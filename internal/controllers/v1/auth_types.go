package v1

import (
	"time"

	"github.com/finanzas-app/backend/internal/models"
	"github.com/finanzas-app/backend/internal/usecases"
)

type RegisterEditable struct {
	Name     string `json:"name" example:"Ana Pérez"`         // Display name of the user
	Email    string `json:"email" example:"ana@example.com"`  // Email address used to log in
	Password string `json:"password" example:"correct horse"` // Password used to log in
}

type LoginEditable struct {
	Email    string `json:"email" example:"ana@example.com"`
	Password string `json:"password" example:"correct horse"`
}

// Auth is a session for a user.
type Auth struct {
	User      models.User `json:"user"`                                                                         // The logged in user
	Token     string      `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJ1c2VyX2lkIjoiOGEz..."` // Bearer token for the session
	ExpiresAt time.Time   `json:"expiresAt" example:"2024-03-16T10:00:00Z"`                                     // Time the session expires
}

func newAuth(result usecases.AuthResult) Auth {
	return Auth{
		User:      result.User,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	}
}

type AuthResponse struct {
	Data  *Auth   `json:"data"`                                      // Data for the session
	Error *string `json:"error" example:"invalid login credentials"` // The error, if any occurred
}

type UserResponse struct {
	Data  *models.User `json:"data"`                                 // Data for the user
	Error *string      `json:"error" example:"auth session missing"` // The error, if any occurred
}
