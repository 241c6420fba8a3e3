package backend

import (
	"context"
	"strings"

	"github.com/spec-kit/sojus-client/internal/domain"
	"github.com/spec-kit/sojus-client/internal/repository"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

// EntityContract names contracts in the audit trail.
const EntityContract = "Contrato"

// DefaultExpiringDays is the look-ahead used when none is given.
const DefaultExpiringDays = 30

// ContractService manages vendor contracts.
type ContractService struct {
	contracts repository.ContractRepository
	audit     *AuditService
	clock     repository.Clock
}

// List returns active contracts.
func (s *ContractService) List(ctx context.Context) ([]domain.Contract, error) {
	items, err := s.contracts.ListActive(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return items, nil
}

func (s *ContractService) Get(ctx context.Context, id int64) (*domain.Contract, error) {
	c, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, EntityContract, id)
	}
	return &c, nil
}

// Expiring returns active contracts ending within days from today, including
// those already past their end date.
func (s *ContractService) Expiring(ctx context.Context, days int) ([]domain.Contract, error) {
	if days < 0 {
		return nil, apperrors.NewValidationError("days debe ser positivo", map[string]any{"days": days})
	}
	items, err := s.contracts.ListEndingBy(ctx, s.clock().AddDate(0, 0, days))
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return items, nil
}

// Create stores a new active contract.
func (s *ContractService) Create(ctx context.Context, actor repository.UserRecord, c domain.Contract) (*domain.Contract, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Vendor = strings.TrimSpace(c.Vendor)
	if c.Name == "" || c.Vendor == "" {
		return nil, apperrors.NewValidationError("Nombre y proveedor son obligatorios", nil)
	}
	if !c.StartsOn.IsZero() && !c.EndsOn.IsZero() && c.EndsOn.Before(c.StartsOn.Time) {
		return nil, apperrors.NewValidationError("La fecha de fin es anterior a la de inicio", nil)
	}
	c.Active = true
	created, err := s.contracts.Create(ctx, c)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.audit.record(ctx, domain.AuditEntry{
		EntityName: EntityContract,
		EntityID:   created.ID,
		Action:     domain.AuditCreate,
		Username:   actor.User.Username,
		NewValue:   created.Name,
	})
	return &created, nil
}
