package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the account holder as seen by the rest of the application.
// It is never stored directly, the auth collaborator owns the Identity
// it is derived from.
type User struct {
	ID        uuid.UUID `json:"id" example:"8a3b6c1e-4f0d-4a5e-9c53-5b0e1f1f8e21"`
	Name      string    `json:"name" example:"Ana Pérez"`
	Email     string    `json:"email" example:"ana@example.com"`
	CreatedAt time.Time `json:"createdAt" example:"2024-01-02T10:00:00Z"`
}

// Identity is a registered login of the auth collaborator.
type Identity struct {
	DefaultModel
	Email        string  `gorm:"uniqueIndex:idx_identity_email"`
	PasswordHash string  `json:"-"`
	FullName     *string // Display name as given on sign up, may be unset
}

// BeforeSave normalizes the email address.
func (i *Identity) BeforeSave(_ *gorm.DB) (err error) {
	i.Email = strings.ToLower(strings.TrimSpace(i.Email))
	return nil
}

// Session is an active login. The ID is the token ID
// of the session token handed out to the client.
type Session struct {
	DefaultModel
	IdentityID uuid.UUID `gorm:"index"`
	ExpiresAt  time.Time
}

// AuthSession is the result of a successful sign up or sign in.
type AuthSession struct {
	Identity  Identity
	Token     string
	ExpiresAt time.Time
}

// swagger:enum SessionEventType
type SessionEventType string

const (
	SessionSignedIn  SessionEventType = "SIGNED_IN"
	SessionSignedOut SessionEventType = "SIGNED_OUT"
)

// SessionEvent notifies subscribers about session changes.
type SessionEvent struct {
	Type   SessionEventType `json:"type" example:"SIGNED_IN"`
	UserID uuid.UUID        `json:"userId" example:"8a3b6c1e-4f0d-4a5e-9c53-5b0e1f1f8e21"`
	Time   time.Time        `json:"time" example:"2024-01-02T10:00:00Z"`
}
