package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/sojus-client/internal/authz"
	"github.com/spec-kit/sojus-client/internal/domain"
	"github.com/spec-kit/sojus-client/internal/gateway"
	"github.com/spec-kit/sojus-client/internal/worker"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

// InventoryService backs the inventory screen.
type InventoryService struct {
	sessions  sessionReader
	inventory *gateway.InventoryService
	logger    *zap.Logger
}

// Inventory is the content of the inventory screen.
type Inventory struct {
	Hardware []domain.Hardware
	Software []domain.Software
}

// NewInventoryService builds the service.
func NewInventoryService(deps Dependencies) *InventoryService {
	return &InventoryService{
		sessions:  deps.Sessions,
		inventory: deps.Gateway.Inventory,
		logger:    deps.Logger.Named("inventory"),
	}
}

// Load fetches hardware and software concurrently. The first failure cancels
// the other request.
func (s *InventoryService) Load(ctx context.Context) (*Inventory, error) {
	if _, err := requireView(s.sessions, authz.ViewInventory); err != nil {
		return nil, err
	}

	var out Inventory
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.inventory.Hardware(gctx)
		out.Hardware = items
		return err
	})
	g.Go(func() error {
		items, err := s.inventory.Software(gctx)
		out.Software = items
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, screenError(err, MsgLoadFailed)
	}
	return &out, nil
}

// Open starts Load in the background.
func (s *InventoryService) Open(ctx context.Context) *worker.Task[*Inventory] {
	return worker.Start(ctx, s.Load, worker.WithLogger[*Inventory](s.logger))
}

// AddHardware registers a hardware asset.
func (s *InventoryService) AddHardware(ctx context.Context, hw domain.Hardware) (*domain.Hardware, error) {
	if _, err := requireAction(s.sessions, authz.ActionWriteInventory); err != nil {
		return nil, err
	}
	if hw.InventoryNumber == "" {
		return nil, apperrors.NewValidationError("El inventario patrimonial es obligatorio", map[string]any{"field": "inventarioPatrimonial"})
	}
	created, err := s.inventory.CreateHardware(ctx, hw)
	if err != nil {
		return nil, screenError(err, "No se pudo registrar el equipo")
	}
	return created, nil
}

// AddSoftware registers a software licence.
func (s *InventoryService) AddSoftware(ctx context.Context, sw domain.Software) (*domain.Software, error) {
	if _, err := requireAction(s.sessions, authz.ActionWriteInventory); err != nil {
		return nil, err
	}
	if sw.Name == "" {
		return nil, apperrors.NewValidationError("El nombre es obligatorio", map[string]any{"field": "nombre"})
	}
	created, err := s.inventory.CreateSoftware(ctx, sw)
	if err != nil {
		return nil, screenError(err, "No se pudo registrar el software")
	}
	return created, nil
}
