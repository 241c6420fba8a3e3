package backend

import (
	"context"

	"github.com/spec-kit/sojus-client/internal/domain"
	"github.com/spec-kit/sojus-client/internal/repository"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

// DirectoryService reads staff accounts and the court structure.
type DirectoryService struct {
	users     repository.UserRepository
	locations repository.LocationRepository
}

func (s *DirectoryService) Users(ctx context.Context) ([]domain.User, error) {
	records, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return usersOf(records), nil
}

func (s *DirectoryService) User(ctx context.Context, id int64) (*domain.User, error) {
	record, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Usuario", id)
	}
	return &record.User, nil
}

// UsersByRole lists the accounts holding role, e.g. technicians for assignment.
func (s *DirectoryService) UsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("Rol inválido", map[string]any{"role": string(role)})
	}
	records, err := s.users.ListByRole(ctx, role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return usersOf(records), nil
}

func (s *DirectoryService) Circumscriptions(ctx context.Context) ([]domain.Circumscription, error) {
	items, err := s.locations.Circumscriptions(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return items, nil
}

// Courts lists active courts.
func (s *DirectoryService) Courts(ctx context.Context) ([]domain.Court, error) {
	records, err := s.locations.Courts(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	out := make([]domain.Court, 0, len(records))
	for _, r := range records {
		out = append(out, r.Court)
	}
	return out, nil
}

func usersOf(records []repository.UserRecord) []domain.User {
	out := make([]domain.User, 0, len(records))
	for _, r := range records {
		out = append(out, r.User)
	}
	return out
}
