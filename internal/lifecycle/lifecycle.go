// Package lifecycle owns the ticket status state machine and the rules for
// opening a ticket. The same table backs the actions offered on screen and the
// mutations sent to the backend.
package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/sojus-client/internal/domain"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

// MsgSubjectRequired is returned when a submission has a blank subject.
const MsgSubjectRequired = "El asunto es obligatorio"

var allowedTransitions = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusRequested:  {domain.TicketStatusAssigned},
	domain.TicketStatusAssigned:   {domain.TicketStatusInProgress, domain.TicketStatusClosed},
	domain.TicketStatusInProgress: {domain.TicketStatusClosed},
	domain.TicketStatusClosed:     {},
}

func isValidTransition(current, next domain.TicketStatus) bool {
	if current == domain.TicketStatusClosed {
		return false
	}
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// StatusUpdate is an accepted transition ready to be sent or applied.
type StatusUpdate struct {
	From          domain.TicketStatus
	Status        domain.TicketStatus
	Comment       string
	StampClosedAt bool
}

// Payload returns the wire body for the status endpoint.
func (u StatusUpdate) Payload() domain.StatusChange {
	return domain.StatusChange{Status: u.Status, Comment: u.Comment}
}

// Targets returns the statuses reachable from current, in lifecycle order.
func Targets(current domain.TicketStatus) []domain.TicketStatus {
	next := allowedTransitions[current]
	if current == domain.TicketStatusClosed || len(next) == 0 {
		return nil
	}
	out := make([]domain.TicketStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether current may move to next.
func CanTransition(current, next domain.TicketStatus) bool {
	return isValidTransition(current, next)
}

// RequestTransition validates moving ticket to target and builds the update.
// Nothing is mutated; a rejected request yields an INVALID_TRANSITION error.
func RequestTransition(ticket *domain.Ticket, target domain.TicketStatus) (StatusUpdate, error) {
	if ticket == nil {
		return StatusUpdate{}, apperrors.NewValidationError("ticket requerido", nil)
	}
	if !isValidTransition(ticket.Status, target) {
		return StatusUpdate{}, apperrors.NewInvalidTransition(string(ticket.Status), string(target))
	}
	return StatusUpdate{
		From:          ticket.Status,
		Status:        target,
		Comment:       TransitionComment(target),
		StampClosedAt: target == domain.TicketStatusClosed,
	}, nil
}

// TransitionComment is the audit comment attached to every status change.
func TransitionComment(target domain.TicketStatus) string {
	return fmt.Sprintf("Estado cambiado a %s", target)
}

// Apply writes an accepted update onto ticket, keeping closedAt set iff the
// ticket is closed.
func Apply(ticket *domain.Ticket, update StatusUpdate, now time.Time) error {
	if !isValidTransition(ticket.Status, update.Status) {
		return apperrors.NewInvalidTransition(string(ticket.Status), string(update.Status))
	}
	ticket.Status = update.Status
	ticket.UpdatedAt = domain.NewTimestamp(now)
	if update.StampClosedAt {
		ticket.ClosedAt = domain.NewTimestamp(now)
	} else {
		ticket.ClosedAt = domain.Timestamp{}
	}
	return nil
}

// ValidateSubmission normalizes a new ticket and rejects it when the subject
// is blank or the priority unknown.
func ValidateSubmission(sub domain.TicketSubmission) (domain.TicketSubmission, error) {
	sub.Subject = strings.TrimSpace(sub.Subject)
	sub.Description = strings.TrimSpace(sub.Description)
	if sub.Subject == "" {
		return sub, apperrors.NewValidationError(MsgSubjectRequired, map[string]any{"field": "asunto"})
	}
	if sub.Priority == "" {
		sub.Priority = domain.TicketPriorityMedium
	}
	if !sub.Priority.Valid() {
		return sub, apperrors.NewValidationError("Prioridad inválida", map[string]any{
			"field": "prioridad",
			"value": string(sub.Priority),
		})
	}
	if sub.Channel == "" {
		sub.Channel = domain.ChannelMobileApp
	}
	return sub, nil
}
