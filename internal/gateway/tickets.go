package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spec-kit/sojus-client/internal/domain"
	"github.com/spec-kit/sojus-client/internal/lifecycle"
)

// TicketsService handles ticket-related API operations.
type TicketsService struct {
	client *Client
}

// List returns every ticket visible to the caller.
func (s *TicketsService) List(ctx context.Context) ([]domain.Ticket, error) {
	var tickets []domain.Ticket
	if err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: "/api/tickets"}, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// Mine returns the tickets assigned to the caller.
func (s *TicketsService) Mine(ctx context.Context) ([]domain.Ticket, error) {
	var tickets []domain.Ticket
	if err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: "/api/tickets/my"}, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// Get returns one ticket.
func (s *TicketsService) Get(ctx context.Context, id int64) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: ticketPath(id)}, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Create validates sub locally and, only if it is valid, opens the ticket.
func (s *TicketsService) Create(ctx context.Context, sub domain.TicketSubmission) (*domain.Ticket, error) {
	sub, err := lifecycle.ValidateSubmission(sub)
	if err != nil {
		return nil, err
	}
	var ticket domain.Ticket
	if err := s.client.Do(ctx, Request{Method: http.MethodPost, Path: "/api/tickets", Body: sub}, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ChangeStatus moves ticket to target. Transitions the lifecycle rejects are
// returned as INVALID_TRANSITION without contacting the server.
func (s *TicketsService) ChangeStatus(ctx context.Context, ticket *domain.Ticket, target domain.TicketStatus) (*domain.Ticket, error) {
	update, err := lifecycle.RequestTransition(ticket, target)
	if err != nil {
		return nil, err
	}
	var updated domain.Ticket
	if err := s.client.Do(ctx, Request{
		Method: http.MethodPatch,
		Path:   ticketPath(ticket.ID) + "/status",
		Body:   update.Payload(),
	}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func ticketPath(id int64) string {
	return fmt.Sprintf("/api/tickets/%d", id)
}
