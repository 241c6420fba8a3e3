package repository

import (
	"context"
	"time"

	"github.com/spec-kit/sojus-client/internal/domain"
)

// ContractRepository defines access to vendor contracts.
type ContractRepository interface {
	Create(ctx context.Context, c domain.Contract) (domain.Contract, error)
	GetByID(ctx context.Context, id int64) (domain.Contract, error)
	ListActive(ctx context.Context) ([]domain.Contract, error)
	// ListEndingBy returns active contracts whose end date is on or before
	// date, already-expired ones included.
	ListEndingBy(ctx context.Context, date time.Time) ([]domain.Contract, error)
	CountActive(ctx context.Context) (int64, error)
	CountEndingBy(ctx context.Context, date time.Time) (int64, error)
}

type contractRepository struct {
	rows *table[domain.Contract]
}

// NewContractRepository returns an empty repository.
func NewContractRepository() ContractRepository {
	return &contractRepository{rows: newTable[domain.Contract]()}
}

func (r *contractRepository) Create(_ context.Context, c domain.Contract) (domain.Contract, error) {
	return r.rows.insert(func(id int64) domain.Contract {
		c.ID = id
		return c
	}), nil
}

func (r *contractRepository) GetByID(_ context.Context, id int64) (domain.Contract, error) {
	c, err := r.rows.get(id)
	if err == nil && !c.Active {
		return domain.Contract{}, ErrNotFound
	}
	return c, err
}

func (r *contractRepository) ListActive(_ context.Context) ([]domain.Contract, error) {
	return r.rows.filter(func(c domain.Contract) bool { return c.Active }), nil
}

func (r *contractRepository) ListEndingBy(_ context.Context, date time.Time) ([]domain.Contract, error) {
	return r.rows.filter(endingBy(date)), nil
}

func (r *contractRepository) CountActive(_ context.Context) (int64, error) {
	return r.rows.count(func(c domain.Contract) bool { return c.Active }), nil
}

func (r *contractRepository) CountEndingBy(_ context.Context, date time.Time) (int64, error) {
	return r.rows.count(endingBy(date)), nil
}

func endingBy(date time.Time) func(domain.Contract) bool {
	limit := domain.NewDate(date).Time
	return func(c domain.Contract) bool {
		return c.Active && !c.EndsOn.IsZero() && !c.EndsOn.After(limit)
	}
}
