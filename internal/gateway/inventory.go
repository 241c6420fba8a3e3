package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spec-kit/sojus-client/internal/domain"
)

// InventoryService handles hardware and software inventory.
type InventoryService struct {
	client *Client
}

func (s *InventoryService) Hardware(ctx context.Context) ([]domain.Hardware, error) {
	var items []domain.Hardware
	if err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: "/api/inventory/hardware"}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *InventoryService) HardwareByID(ctx context.Context, id int64) (*domain.Hardware, error) {
	var item domain.Hardware
	if err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: fmt.Sprintf("/api/inventory/hardware/%d", id)}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *InventoryService) CreateHardware(ctx context.Context, hw domain.Hardware) (*domain.Hardware, error) {
	var created domain.Hardware
	if err := s.client.Do(ctx, Request{Method: http.MethodPost, Path: "/api/inventory/hardware", Body: hw}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *InventoryService) Software(ctx context.Context) ([]domain.Software, error) {
	var items []domain.Software
	if err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: "/api/inventory/software"}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *InventoryService) SoftwareByID(ctx context.Context, id int64) (*domain.Software, error) {
	var item domain.Software
	if err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: fmt.Sprintf("/api/inventory/software/%d", id)}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *InventoryService) CreateSoftware(ctx context.Context, sw domain.Software) (*domain.Software, error) {
	var created domain.Software
	if err := s.client.Do(ctx, Request{Method: http.MethodPost, Path: "/api/inventory/software", Body: sw}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
