package gateway

import (
	"context"
	"net/http"

	"github.com/spec-kit/sojus-client/internal/domain"
)

// DashboardService exposes the dashboard counters.
type DashboardService struct {
	client *Client
}

func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: "/api/dashboard/stats"}, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
