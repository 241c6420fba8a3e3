package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spec-kit/sojus-client/internal/domain"
)

// AuditService reads the audit trail.
type AuditService struct {
	client *Client
}

func (s *AuditService) List(ctx context.Context) ([]domain.AuditEntry, error) {
	var items []domain.AuditEntry
	if err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: "/api/audit"}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ForEntity returns the trail of one entity, e.g. ("Ticket", 12).
func (s *AuditService) ForEntity(ctx context.Context, entity string, id int64) ([]domain.AuditEntry, error) {
	var items []domain.AuditEntry
	path := fmt.Sprintf("/api/audit/entity/%s/%d", url.PathEscape(entity), id)
	if err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: path}, &items); err != nil {
		return nil, err
	}
	return items, nil
}
