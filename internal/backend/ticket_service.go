package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/sojus-client/internal/api/dto"
	"github.com/spec-kit/sojus-client/internal/domain"
	"github.com/spec-kit/sojus-client/internal/events"
	"github.com/spec-kit/sojus-client/internal/lifecycle"
	"github.com/spec-kit/sojus-client/internal/repository"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

// EntityTicket names tickets in the audit trail.
const EntityTicket = "Ticket"

// urgentKeywords force ALTA priority when they appear in a subject.
var urgentKeywords = []string{"juez", "audiencia", "sala"}

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	hardware   repository.HardwareRepository
	locations  repository.LocationRepository
	audit      *AuditService
	dispatcher events.Dispatcher
	logger     *zap.Logger
	clock      repository.Clock
}

func newTicketService(deps Dependencies, audit *AuditService) *TicketService {
	return &TicketService{
		tickets:    deps.Repos.Tickets,
		users:      deps.Repos.Users,
		hardware:   deps.Repos.Hardware,
		locations:  deps.Repos.Locations,
		audit:      audit,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger.Named("tickets"),
		clock:      deps.Clock,
	}
}

// List returns the tickets visible to actor: technicians see the ones assigned
// to them, everyone else sees all.
func (s *TicketService) List(ctx context.Context, actor repository.UserRecord) ([]domain.Ticket, error) {
	filter := repository.TicketFilter{}
	if actor.User.Role == domain.RoleTechnician {
		filter.TechnicianID = actor.User.ID
	}
	return s.list(ctx, filter)
}

// Mine returns the tickets tied to actor: assigned for technicians, requested
// for operators, all for administrators.
func (s *TicketService) Mine(ctx context.Context, actor repository.UserRecord) ([]domain.Ticket, error) {
	filter := repository.TicketFilter{}
	switch actor.User.Role {
	case domain.RoleTechnician:
		filter.TechnicianID = actor.User.ID
	case domain.RoleOperator:
		filter.RequesterID = actor.User.ID
	}
	return s.list(ctx, filter)
}

func (s *TicketService) list(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	records, err := s.tickets.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	out := make([]domain.Ticket, 0, len(records))
	for _, r := range records {
		out = append(out, r.Ticket)
	}
	return out, nil
}

// Get returns one ticket.
func (s *TicketService) Get(ctx context.Context, id int64) (*domain.Ticket, error) {
	record, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, EntityTicket, id)
	}
	return &record.Ticket, nil
}

// Create opens a ticket requested by actor. Subjects mentioning a judge, a
// hearing or a courtroom are raised to ALTA, and a hardware item may only have
// one open ticket.
func (s *TicketService) Create(ctx context.Context, actor repository.UserRecord, req dto.CreateTicketRequest) (*domain.Ticket, error) {
	sub := req.TicketSubmission
	if sub.Channel == "" {
		sub.Channel = domain.ChannelWeb
	}
	sub, err := lifecycle.ValidateSubmission(sub)
	if err != nil {
		return nil, err
	}
	if isUrgent(sub.Subject) {
		sub.Priority = domain.TicketPriorityHigh
	}

	record := repository.TicketRecord{
		Ticket: domain.Ticket{
			Subject:     sub.Subject,
			Description: sub.Description,
			Status:      domain.TicketStatusRequested,
			Priority:    sub.Priority,
			Channel:     sub.Channel,
			Requester:   actor.User.FullName,
		},
		RequesterID: actor.User.ID,
	}

	if req.CourtID != nil {
		court, err := s.locations.CourtByID(ctx, *req.CourtID)
		if err != nil {
			return nil, notFound(err, "Juzgado", *req.CourtID)
		}
		record.CourtID = court.Court.ID
		record.Ticket.Court = court.Court.Name
	}

	if req.HardwareID != nil {
		hw, err := s.hardware.GetByID(ctx, *req.HardwareID)
		if err != nil {
			return nil, notFound(err, "Hardware", *req.HardwareID)
		}
		open, err := s.tickets.HasOpenForHardware(ctx, hw.Hardware.ID)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		if open {
			return nil, apperrors.NewConflict(
				fmt.Sprintf("El equipo %s ya tiene un ticket activo. Cierre el ticket existente antes de crear uno nuevo.", hw.Hardware.InventoryNumber),
				map[string]any{"hardwareId": hw.Hardware.ID},
			)
		}
		record.HardwareID = hw.Hardware.ID
		record.Ticket.Hardware = hw.Hardware.InventoryNumber
	}

	created, err := s.tickets.Create(ctx, record)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.audit.record(ctx, domain.AuditEntry{
		EntityName: EntityTicket,
		EntityID:   created.Ticket.ID,
		Action:     domain.AuditCreate,
		Username:   actor.User.Username,
		NewValue:   "Ticket creado: " + created.Ticket.Subject,
	})
	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type: events.EventTicketCreated,
		Payload: events.TicketCreatedPayload{
			TicketID: created.Ticket.ID,
			Subject:  created.Ticket.Subject,
			Priority: created.Ticket.Priority,
		},
	})
	return &created.Ticket, nil
}

// ChangeStatus moves a ticket along the lifecycle. A technician id assigns the
// ticket and must name a TECNICO; a technician moving a ticket to ASIGNADO
// without one takes it. The comment is appended to the log.
func (s *TicketService) ChangeStatus(ctx context.Context, actor repository.UserRecord, id int64, change domain.StatusChange) (*domain.Ticket, error) {
	if !change.Status.Valid() {
		return nil, apperrors.NewValidationError("Estado inválido", map[string]any{"status": string(change.Status)})
	}

	var technician *repository.UserRecord
	if change.TechnicianID != nil {
		tech, err := s.users.GetByID(ctx, *change.TechnicianID)
		if err != nil {
			return nil, notFound(err, "Técnico", *change.TechnicianID)
		}
		if tech.User.Role != domain.RoleTechnician {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("El usuario '%s' no tiene rol TECNICO. Solo se pueden asignar técnicos a los tickets.", tech.User.FullName),
				map[string]any{"tecnicoId": tech.User.ID},
			)
		}
		technician = &tech
	} else if change.Status == domain.TicketStatusAssigned && actor.User.Role == domain.RoleTechnician {
		technician = &actor
	}

	now := s.clock()
	var oldStatus domain.TicketStatus
	updated, err := s.tickets.Update(ctx, id, func(record *repository.TicketRecord) error {
		oldStatus = record.Ticket.Status
		update, err := lifecycle.RequestTransition(&record.Ticket, change.Status)
		if err != nil {
			return err
		}
		if err := lifecycle.Apply(&record.Ticket, update, now); err != nil {
			return err
		}
		if technician != nil {
			record.TechnicianID = technician.User.ID
			record.Ticket.Assignee = technician.User.FullName
		}
		if comment := strings.TrimSpace(change.Comment); comment != "" {
			record.Ticket.Log += fmt.Sprintf("[%s] %s: %s\n", now.Format(domain.TimestampLayout), actor.User.Username, comment)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound(err, EntityTicket, id)
		}
		return nil, err
	}

	s.audit.record(ctx, domain.AuditEntry{
		EntityName: EntityTicket,
		EntityID:   id,
		Action:     domain.AuditStatusChange,
		Username:   actor.User.Username,
		Field:      "status",
		OldValue:   string(oldStatus),
		NewValue:   string(updated.Ticket.Status),
	})
	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type: events.EventTicketStatusChanged,
		Payload: events.TicketStatusChangedPayload{
			TicketID:  id,
			OldStatus: oldStatus,
			NewStatus: updated.Ticket.Status,
			Comment:   change.Comment,
		},
	})
	return &updated.Ticket, nil
}

func isUrgent(subject string) bool {
	lower := strings.ToLower(subject)
	for _, kw := range urgentKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
