package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spec-kit/sojus-client/internal/domain"
)

// ContractsService handles vendor contracts.
type ContractsService struct {
	client *Client
}

func (s *ContractsService) List(ctx context.Context) ([]domain.Contract, error) {
	var items []domain.Contract
	if err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: "/api/contracts"}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *ContractsService) Get(ctx context.Context, id int64) (*domain.Contract, error) {
	var item domain.Contract
	if err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: fmt.Sprintf("/api/contracts/%d", id)}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *ContractsService) Create(ctx context.Context, c domain.Contract) (*domain.Contract, error) {
	var created domain.Contract
	if err := s.client.Do(ctx, Request{Method: http.MethodPost, Path: "/api/contracts", Body: c}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Expiring returns contracts ending within the next days days.
func (s *ContractsService) Expiring(ctx context.Context, days int) ([]domain.Contract, error) {
	var items []domain.Contract
	query := url.Values{"days": []string{strconv.Itoa(days)}}
	if err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: "/api/contracts/expiring", Query: query}, &items); err != nil {
		return nil, err
	}
	return items, nil
}
