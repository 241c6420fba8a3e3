package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/spec-kit/sojus-client/internal/authz"
	"github.com/spec-kit/sojus-client/internal/domain"
	"github.com/spec-kit/sojus-client/internal/gateway"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

// DefaultExpiringDays is the look-ahead window of the expiring-contracts list.
const DefaultExpiringDays = 30

// ContractService backs the contracts screen.
type ContractService struct {
	sessions  sessionReader
	contracts *gateway.ContractsService
	logger    *zap.Logger
}

// NewContractService builds the service.
func NewContractService(deps Dependencies) *ContractService {
	return &ContractService{
		sessions:  deps.Sessions,
		contracts: deps.Gateway.Contracts,
		logger:    deps.Logger.Named("contracts"),
	}
}

// List loads the active contracts ordered by end date.
func (s *ContractService) List(ctx context.Context) ([]domain.Contract, error) {
	if _, err := requireView(s.sessions, authz.ViewContracts); err != nil {
		return nil, err
	}
	items, err := s.contracts.List(ctx)
	if err != nil {
		return nil, screenError(err, MsgLoadFailed)
	}
	sortByEnd(items)
	return items, nil
}

// Expiring loads contracts ending within days; non-positive days use the
// default window.
func (s *ContractService) Expiring(ctx context.Context, days int) ([]domain.Contract, error) {
	if _, err := requireView(s.sessions, authz.ViewContracts); err != nil {
		return nil, err
	}
	if days <= 0 {
		days = DefaultExpiringDays
	}
	items, err := s.contracts.Expiring(ctx, days)
	if err != nil {
		return nil, screenError(err, MsgLoadFailed)
	}
	sortByEnd(items)
	return items, nil
}

// Create registers a contract.
func (s *ContractService) Create(ctx context.Context, c domain.Contract) (*domain.Contract, error) {
	if _, err := requireAction(s.sessions, authz.ActionWriteContract); err != nil {
		return nil, err
	}
	if c.Name == "" || c.Vendor == "" {
		return nil, apperrors.NewValidationError("Nombre y proveedor son obligatorios", nil)
	}
	created, err := s.contracts.Create(ctx, c)
	if err != nil {
		return nil, screenError(err, "No se pudo registrar el contrato")
	}
	return created, nil
}

func sortByEnd(items []domain.Contract) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].EndsOn, items[j].EndsOn
		if a.IsZero() != b.IsZero() {
			return !a.IsZero()
		}
		return a.Before(b.Time)
	})
}
