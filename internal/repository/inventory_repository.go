package repository

import (
	"context"
	"strings"

	"github.com/spec-kit/sojus-client/internal/domain"
)

// HardwareRecord is a stored hardware asset.
type HardwareRecord struct {
	Hardware domain.Hardware
	CourtID  int64
}

// HardwareRepository defines access to hardware assets.
type HardwareRepository interface {
	Create(ctx context.Context, record HardwareRecord) (HardwareRecord, error)
	GetByID(ctx context.Context, id int64) (HardwareRecord, error)
	List(ctx context.Context) ([]HardwareRecord, error)
	Count(ctx context.Context) (int64, error)
}

type hardwareRepository struct {
	rows  *table[HardwareRecord]
	clock Clock
}

// NewHardwareRepository returns an empty repository.
func NewHardwareRepository(clock Clock) HardwareRepository {
	return &hardwareRepository{rows: newTable[HardwareRecord](), clock: clock}
}

func (r *hardwareRepository) Create(_ context.Context, record HardwareRecord) (HardwareRecord, error) {
	number := record.Hardware.InventoryNumber
	dup := r.rows.count(func(h HardwareRecord) bool {
		return strings.EqualFold(h.Hardware.InventoryNumber, number)
	})
	if dup > 0 {
		return HardwareRecord{}, ErrDuplicate
	}
	now := domain.NewTimestamp(r.clock())
	return r.rows.insert(func(id int64) HardwareRecord {
		record.Hardware.ID = id
		record.Hardware.CreatedAt = now
		record.Hardware.UpdatedAt = now
		return record
	}), nil
}

func (r *hardwareRepository) GetByID(_ context.Context, id int64) (HardwareRecord, error) {
	return r.rows.get(id)
}

func (r *hardwareRepository) List(_ context.Context) ([]HardwareRecord, error) {
	return r.rows.filter(nil), nil
}

func (r *hardwareRepository) Count(_ context.Context) (int64, error) {
	return r.rows.count(nil), nil
}

// SoftwareRepository defines access to software licences.
type SoftwareRepository interface {
	Create(ctx context.Context, sw domain.Software) (domain.Software, error)
	GetByID(ctx context.Context, id int64) (domain.Software, error)
	List(ctx context.Context) ([]domain.Software, error)
	Count(ctx context.Context) (int64, error)
}

type softwareRepository struct {
	rows *table[domain.Software]
}

// NewSoftwareRepository returns an empty repository.
func NewSoftwareRepository() SoftwareRepository {
	return &softwareRepository{rows: newTable[domain.Software]()}
}

func (r *softwareRepository) Create(_ context.Context, sw domain.Software) (domain.Software, error) {
	return r.rows.insert(func(id int64) domain.Software {
		sw.ID = id
		return sw
	}), nil
}

func (r *softwareRepository) GetByID(_ context.Context, id int64) (domain.Software, error) {
	return r.rows.get(id)
}

func (r *softwareRepository) List(_ context.Context) ([]domain.Software, error) {
	return r.rows.filter(nil), nil
}

func (r *softwareRepository) Count(_ context.Context) (int64, error) {
	return r.rows.count(nil), nil
}
