package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spec-kit/sojus-client/internal/domain"
)

// DirectoryService reads locations and staff users.
type DirectoryService struct {
	client *Client
}

func (s *DirectoryService) Circumscriptions(ctx context.Context) ([]domain.Circumscription, error) {
	var items []domain.Circumscription
	if err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: "/api/locations/circunscripciones"}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *DirectoryService) Courts(ctx context.Context) ([]domain.Court, error) {
	var items []domain.Court
	if err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: "/api/locations/juzgados"}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *DirectoryService) Users(ctx context.Context) ([]domain.User, error) {
	var items []domain.User
	if err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: "/api/users"}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *DirectoryService) User(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	if err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: fmt.Sprintf("/api/users/%d", id)}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *DirectoryService) UsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	var items []domain.User
	if err := s.client.Do(ctx, Request{Method: http.MethodGet, Path: "/api/users/role/" + string(role)}, &items); err != nil {
		return nil, err
	}
	return items, nil
}
