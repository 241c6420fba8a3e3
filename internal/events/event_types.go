package events

import (
	"time"

	"github.com/spec-kit/sojus-client/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionStatusChanged EventType = "session.status_changed"
	EventSessionInvalidated   EventType = "session.invalidated"
	EventTicketStatusChanged  EventType = "ticket.status_changed"
	EventTicketCreated        EventType = "ticket.created"
)

// Event represents a notification emitted by the session or the screen services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Seq       uint64    `json:"seq"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// SessionStatusChangedPayload carries every session transition.
type SessionStatusChangedPayload struct {
	From     domain.SessionStatus `json:"from"`
	To       domain.SessionStatus `json:"to"`
	Username string               `json:"username,omitempty"`
	Role     domain.Role          `json:"role,omitempty"`
}

// SessionInvalidatedPayload is emitted when the server rejected the credential.
type SessionInvalidatedPayload struct {
	Username string `json:"username,omitempty"`
	Reason   string `json:"reason"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	TicketID  int64               `json:"ticket_id"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	Comment   string              `json:"comment,omitempty"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketID int64                 `json:"ticket_id"`
	Subject  string                `json:"subject"`
	Priority domain.TicketPriority `json:"priority"`
}
