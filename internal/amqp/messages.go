package amqp

import (
	"encoding/json"
	"time"

	"github.com/finanzas-app/backend/internal/models"
	"github.com/google/uuid"
)

// SessionMessage is published for every session event.
type SessionMessage struct {
	Type      models.SessionEventType `json:"type"`
	UserID    uuid.UUID               `json:"userId"`
	Timestamp time.Time               `json:"timestamp"`
}

// NewSessionMessage creates the message for a session event.
func NewSessionMessage(event models.SessionEvent) *SessionMessage {
	return &SessionMessage{
		Type:      event.Type,
		UserID:    event.UserID,
		Timestamp: event.Time.UTC(),
	}
}

// RoutingKey returns the routing key for the message, "session.signed_in"
// or "session.signed_out".
func (m *SessionMessage) RoutingKey() string {
	switch m.Type {
	case models.SessionSignedIn:
		return "session.signed_in"
	case models.SessionSignedOut:
		return "session.signed_out"
	}
	return "session.unknown"
}

// ToJSON converts the message to JSON bytes
func (m *SessionMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SessionMessageFromJSON creates a message from JSON bytes
func SessionMessageFromJSON(data []byte) (*SessionMessage, error) {
	var msg SessionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
