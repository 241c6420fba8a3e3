package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/sojus-client/internal/authz"
	"github.com/spec-kit/sojus-client/internal/domain"
	"github.com/spec-kit/sojus-client/internal/events"
	"github.com/spec-kit/sojus-client/internal/gateway"
	"github.com/spec-kit/sojus-client/internal/lifecycle"
	"github.com/spec-kit/sojus-client/internal/worker"
)

// TicketService backs the ticket list, detail and creation screens.
type TicketService struct {
	sessions   sessionReader
	tickets    *gateway.TicketsService
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketView is a ticket together with the status changes the current user
// may request on it.
type TicketView struct {
	Ticket  *domain.Ticket
	Actions []domain.TicketStatus
}

// NewTicketService builds the service.
func NewTicketService(deps Dependencies) *TicketService {
	return &TicketService{
		sessions:   deps.Sessions,
		tickets:    deps.Gateway.Tickets,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger.Named("tickets"),
	}
}

// AvailableActions lists the target statuses shown as buttons for role on
// ticket. Roles without the status-change permission get none, as does a
// closed ticket.
func AvailableActions(role domain.Role, ticket *domain.Ticket) []domain.TicketStatus {
	if ticket == nil || !authz.Allows(role, authz.ActionChangeStatus) {
		return nil
	}
	return lifecycle.Targets(ticket.Status)
}

// List loads the ticket list. The server narrows it for technicians.
func (s *TicketService) List(ctx context.Context) ([]domain.Ticket, error) {
	if _, err := requireView(s.sessions, authz.ViewTickets); err != nil {
		return nil, err
	}
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, screenError(err, MsgLoadFailed)
	}
	return tickets, nil
}

// Mine loads the tickets tied to the signed-in user.
func (s *TicketService) Mine(ctx context.Context) ([]domain.Ticket, error) {
	if _, err := requireView(s.sessions, authz.ViewTickets); err != nil {
		return nil, err
	}
	tickets, err := s.tickets.Mine(ctx)
	if err != nil {
		return nil, screenError(err, MsgLoadFailed)
	}
	return tickets, nil
}

// Detail loads one ticket with its available actions.
func (s *TicketService) Detail(ctx context.Context, id int64) (*TicketView, error) {
	current, err := requireView(s.sessions, authz.ViewTickets)
	if err != nil {
		return nil, err
	}
	ticket, err := s.tickets.Get(ctx, id)
	if err != nil {
		return nil, screenError(err, MsgLoadTicketFailed)
	}
	return &TicketView{Ticket: ticket, Actions: AvailableActions(current.Role(), ticket)}, nil
}

// OpenList starts loading the ticket list in the background.
func (s *TicketService) OpenList(ctx context.Context) *worker.Task[[]domain.Ticket] {
	return worker.Start(ctx, s.List, worker.WithLogger[[]domain.Ticket](s.logger))
}

// OpenDetail starts loading one ticket in the background.
func (s *TicketService) OpenDetail(ctx context.Context, id int64) *worker.Task[*TicketView] {
	return worker.Start(ctx, func(ctx context.Context) (*TicketView, error) {
		return s.Detail(ctx, id)
	}, worker.WithLogger[*TicketView](s.logger))
}

// Create submits a new ticket. A blank subject is rejected locally.
func (s *TicketService) Create(ctx context.Context, sub domain.TicketSubmission) (*domain.Ticket, error) {
	if _, err := requireAction(s.sessions, authz.ActionCreateTicket); err != nil {
		return nil, screenError(err, MsgCreateFailed)
	}
	ticket, err := s.tickets.Create(ctx, sub)
	if err != nil {
		return nil, screenError(err, MsgCreateFailed)
	}
	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type: events.EventTicketCreated,
		Payload: events.TicketCreatedPayload{
			TicketID: ticket.ID,
			Subject:  ticket.Subject,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// ChangeStatus moves ticket to target. The transition and the role are
// checked before the request; on failure ticket is left untouched.
func (s *TicketService) ChangeStatus(ctx context.Context, ticket *domain.Ticket, target domain.TicketStatus) (*TicketView, error) {
	current, err := requireAction(s.sessions, authz.ActionChangeStatus)
	if err != nil {
		return nil, screenError(err, MsgStatusFailed)
	}
	updated, err := s.tickets.ChangeStatus(ctx, ticket, target)
	if err != nil {
		return nil, screenError(err, MsgStatusFailed)
	}
	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type: events.EventTicketStatusChanged,
		Payload: events.TicketStatusChangedPayload{
			TicketID:  updated.ID,
			OldStatus: ticket.Status,
			NewStatus: updated.Status,
			Comment:   lifecycle.TransitionComment(target),
		},
	})
	return &TicketView{Ticket: updated, Actions: AvailableActions(current.Role(), updated)}, nil
}
