package backend

import (
	"context"

	"github.com/spec-kit/sojus-client/internal/domain"
	"github.com/spec-kit/sojus-client/internal/repository"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

// AuditService writes and reads the audit trail.
type AuditService struct {
	audit repository.AuditRepository
	clock repository.Clock
}

// Recent returns the latest entries, newest first.
func (s *AuditService) Recent(ctx context.Context) ([]domain.AuditEntry, error) {
	entries, err := s.audit.Recent(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return entries, nil
}

// ForEntity returns the trail of one record, newest first.
func (s *AuditService) ForEntity(ctx context.Context, entity string, id int64) ([]domain.AuditEntry, error) {
	entries, err := s.audit.ListForEntity(ctx, entity, id)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return entries, nil
}

// record stores entry; the in-memory store cannot fail.
func (s *AuditService) record(ctx context.Context, entry domain.AuditEntry) {
	entry.Timestamp = domain.NewTimestamp(s.clock())
	_, _ = s.audit.Create(ctx, entry)
}
