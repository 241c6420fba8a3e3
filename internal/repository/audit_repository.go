package repository

import (
	"context"
	"sort"

	"github.com/spec-kit/sojus-client/internal/domain"
)

// RecentAuditLimit caps the unfiltered audit listing.
const RecentAuditLimit = 100

// AuditRepository stores the audit trail.
type AuditRepository interface {
	Create(ctx context.Context, entry domain.AuditEntry) (domain.AuditEntry, error)
	Recent(ctx context.Context) ([]domain.AuditEntry, error)
	ListForEntity(ctx context.Context, entity string, entityID int64) ([]domain.AuditEntry, error)
}

type auditRepository struct {
	rows  *table[domain.AuditEntry]
	clock Clock
}

// NewAuditRepository returns an empty repository.
func NewAuditRepository(clock Clock) AuditRepository {
	return &auditRepository{rows: newTable[domain.AuditEntry](), clock: clock}
}

func (r *auditRepository) Create(_ context.Context, entry domain.AuditEntry) (domain.AuditEntry, error) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = domain.NewTimestamp(r.clock())
	}
	return r.rows.insert(func(id int64) domain.AuditEntry {
		entry.ID = id
		return entry
	}), nil
}

func (r *auditRepository) Recent(_ context.Context) ([]domain.AuditEntry, error) {
	out := newestFirst(r.rows.filter(nil))
	if len(out) > RecentAuditLimit {
		out = out[:RecentAuditLimit]
	}
	return out, nil
}

func (r *auditRepository) ListForEntity(_ context.Context, entity string, entityID int64) ([]domain.AuditEntry, error) {
	return newestFirst(r.rows.filter(func(e domain.AuditEntry) bool {
		return e.EntityName == entity && e.EntityID == entityID
	})), nil
}

// newestFirst orders by timestamp descending, later ids first on ties.
func newestFirst(entries []domain.AuditEntry) []domain.AuditEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.Timestamp.Equal(b.Timestamp.Time) {
			return a.Timestamp.After(b.Timestamp.Time)
		}
		return a.ID > b.ID
	})
	return entries
}
