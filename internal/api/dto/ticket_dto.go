package dto

import "github.com/spec-kit/sojus-client/internal/domain"

// CreateTicketRequest is the body of POST /api/tickets. The court and the
// affected hardware are optional references.
type CreateTicketRequest struct {
	domain.TicketSubmission
	CourtID    *int64 `json:"juzgadoId,omitempty"`
	HardwareID *int64 `json:"hardwareId,omitempty"`
}
