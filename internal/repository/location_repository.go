package repository

import (
	"context"

	"github.com/spec-kit/sojus-client/internal/domain"
)

// CourtRecord is a stored court.
type CourtRecord struct {
	Court             domain.Court
	CircumscriptionID int64
}

// LocationRepository defines access to the territorial structure.
type LocationRepository interface {
	CreateCircumscription(ctx context.Context, c domain.Circumscription) (domain.Circumscription, error)
	CreateCourt(ctx context.Context, record CourtRecord) (CourtRecord, error)
	Circumscriptions(ctx context.Context) ([]domain.Circumscription, error)
	Courts(ctx context.Context) ([]CourtRecord, error)
	CourtByID(ctx context.Context, id int64) (CourtRecord, error)
}

type locationRepository struct {
	circumscriptions *table[domain.Circumscription]
	courts           *table[CourtRecord]
}

// NewLocationRepository returns an empty repository.
func NewLocationRepository() LocationRepository {
	return &locationRepository{
		circumscriptions: newTable[domain.Circumscription](),
		courts:           newTable[CourtRecord](),
	}
}

func (r *locationRepository) CreateCircumscription(_ context.Context, c domain.Circumscription) (domain.Circumscription, error) {
	return r.circumscriptions.insert(func(id int64) domain.Circumscription {
		c.ID = id
		return c
	}), nil
}

func (r *locationRepository) CreateCourt(_ context.Context, record CourtRecord) (CourtRecord, error) {
	if record.CircumscriptionID != 0 {
		if _, err := r.circumscriptions.get(record.CircumscriptionID); err != nil {
			return CourtRecord{}, err
		}
	}
	return r.courts.insert(func(id int64) CourtRecord {
		record.Court.ID = id
		return record
	}), nil
}

func (r *locationRepository) Circumscriptions(_ context.Context) ([]domain.Circumscription, error) {
	return r.circumscriptions.filter(nil), nil
}

func (r *locationRepository) Courts(_ context.Context) ([]CourtRecord, error) {
	return r.courts.filter(func(c CourtRecord) bool { return c.Court.Active }), nil
}

func (r *locationRepository) CourtByID(_ context.Context, id int64) (CourtRecord, error) {
	return r.courts.get(id)
}
