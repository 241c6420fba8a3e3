package backend

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/sojus-client/internal/domain"
	"github.com/spec-kit/sojus-client/internal/repository"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

// Audit entity names of inventory records.
const (
	EntityHardware = "Hardware"
	EntitySoftware = "Software"
)

// MsgDuplicateInventory is returned when an inventory number is taken.
const MsgDuplicateInventory = "Ya existe un equipo con ese N° Inventario Patrimonial"

// InventoryService manages hardware and software.
type InventoryService struct {
	hardware repository.HardwareRepository
	software repository.SoftwareRepository
	audit    *AuditService
}

func (s *InventoryService) Hardware(ctx context.Context) ([]domain.Hardware, error) {
	records, err := s.hardware.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	out := make([]domain.Hardware, 0, len(records))
	for _, r := range records {
		out = append(out, r.Hardware)
	}
	return out, nil
}

func (s *InventoryService) HardwareByID(ctx context.Context, id int64) (*domain.Hardware, error) {
	record, err := s.hardware.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, EntityHardware, id)
	}
	return &record.Hardware, nil
}

// CreateHardware registers an asset; the inventory number must be unique.
func (s *InventoryService) CreateHardware(ctx context.Context, actor repository.UserRecord, hw domain.Hardware) (*domain.Hardware, error) {
	hw.InventoryNumber = strings.TrimSpace(hw.InventoryNumber)
	if hw.InventoryNumber == "" {
		return nil, apperrors.NewValidationError("El N° Inventario Patrimonial es obligatorio", map[string]any{"field": "inventarioPatrimonial"})
	}
	if hw.State == "" {
		hw.State = "ACTIVO"
	}
	created, err := s.hardware.Create(ctx, repository.HardwareRecord{Hardware: hw})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict(MsgDuplicateInventory, map[string]any{"inventarioPatrimonial": hw.InventoryNumber})
		}
		return nil, apperrors.NewInternalError(err)
	}
	s.audit.record(ctx, domain.AuditEntry{
		EntityName: EntityHardware,
		EntityID:   created.Hardware.ID,
		Action:     domain.AuditCreate,
		Username:   actor.User.Username,
		NewValue:   created.Hardware.InventoryNumber,
	})
	return &created.Hardware, nil
}

func (s *InventoryService) Software(ctx context.Context) ([]domain.Software, error) {
	items, err := s.software.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return items, nil
}

func (s *InventoryService) SoftwareByID(ctx context.Context, id int64) (*domain.Software, error) {
	sw, err := s.software.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, EntitySoftware, id)
	}
	return &sw, nil
}

// CreateSoftware registers a licensed product.
func (s *InventoryService) CreateSoftware(ctx context.Context, actor repository.UserRecord, sw domain.Software) (*domain.Software, error) {
	sw.Name = strings.TrimSpace(sw.Name)
	if sw.Name == "" {
		return nil, apperrors.NewValidationError("El nombre es obligatorio", map[string]any{"field": "nombre"})
	}
	if sw.State == "" {
		sw.State = "ACTIVO"
	}
	created, err := s.software.Create(ctx, sw)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.audit.record(ctx, domain.AuditEntry{
		EntityName: EntitySoftware,
		EntityID:   created.ID,
		Action:     domain.AuditCreate,
		Username:   actor.User.Username,
		NewValue:   created.Name,
	})
	return &created, nil
}
