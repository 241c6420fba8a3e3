package repository

import (
	"context"

	"github.com/spec-kit/sojus-client/internal/domain"
)

// TicketRecord is a stored ticket with the references its wire form only
// shows by name.
type TicketRecord struct {
	Ticket       domain.Ticket
	RequesterID  int64
	TechnicianID int64
	CourtID      int64
	HardwareID   int64
}

// TicketFilter narrows List. Zero fields match everything.
type TicketFilter struct {
	RequesterID  int64
	TechnicianID int64
	Statuses     []domain.TicketStatus
}

func (f TicketFilter) match(r TicketRecord) bool {
	if f.RequesterID != 0 && r.RequesterID != f.RequesterID {
		return false
	}
	if f.TechnicianID != 0 && r.TechnicianID != f.TechnicianID {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if r.Ticket.Status == s {
			return true
		}
	}
	return false
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, record TicketRecord) (TicketRecord, error)
	// Update applies fn to the stored record under the repository lock. The
	// record is unchanged when fn fails.
	Update(ctx context.Context, id int64, fn func(*TicketRecord) error) (TicketRecord, error)
	GetByID(ctx context.Context, id int64) (TicketRecord, error)
	List(ctx context.Context, filter TicketFilter) ([]TicketRecord, error)
	CountByStatus(ctx context.Context, statuses ...domain.TicketStatus) (int64, error)
	CountOpenByPriority(ctx context.Context, priority domain.TicketPriority) (int64, error)
	HasOpenForHardware(ctx context.Context, hardwareID int64) (bool, error)
}

type ticketRepository struct {
	rows  *table[TicketRecord]
	clock Clock
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(clock Clock) TicketRepository {
	return &ticketRepository{rows: newTable[TicketRecord](), clock: clock}
}

func (r *ticketRepository) Create(_ context.Context, record TicketRecord) (TicketRecord, error) {
	now := domain.NewTimestamp(r.clock())
	return r.rows.insert(func(id int64) TicketRecord {
		record.Ticket.ID = id
		if record.Ticket.CreatedAt.IsZero() {
			record.Ticket.CreatedAt = now
		}
		if record.Ticket.UpdatedAt.IsZero() {
			record.Ticket.UpdatedAt = record.Ticket.CreatedAt
		}
		return record
	}), nil
}

func (r *ticketRepository) Update(_ context.Context, id int64, fn func(*TicketRecord) error) (TicketRecord, error) {
	return r.rows.update(id, func(current TicketRecord) (TicketRecord, error) {
		next := current
		if err := fn(&next); err != nil {
			return current, err
		}
		next.Ticket.ID = id
		return next, nil
	})
}

func (r *ticketRepository) GetByID(_ context.Context, id int64) (TicketRecord, error) {
	return r.rows.get(id)
}

func (r *ticketRepository) List(_ context.Context, filter TicketFilter) ([]TicketRecord, error) {
	return r.rows.filter(filter.match), nil
}

func (r *ticketRepository) CountByStatus(_ context.Context, statuses ...domain.TicketStatus) (int64, error) {
	filter := TicketFilter{Statuses: statuses}
	return r.rows.count(filter.match), nil
}

func (r *ticketRepository) CountOpenByPriority(_ context.Context, priority domain.TicketPriority) (int64, error) {
	return r.rows.count(func(t TicketRecord) bool {
		return t.Ticket.Priority == priority && !t.Ticket.Closed()
	}), nil
}

func (r *ticketRepository) HasOpenForHardware(_ context.Context, hardwareID int64) (bool, error) {
	n := r.rows.count(func(t TicketRecord) bool {
		return t.HardwareID == hardwareID && !t.Ticket.Closed()
	})
	return n > 0, nil
}
