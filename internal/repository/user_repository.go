package repository

import (
	"context"
	"strings"

	"github.com/spec-kit/sojus-client/internal/domain"
)

// UserRecord is a stored account.
type UserRecord struct {
	User         domain.User
	PasswordHash string
	Active       bool
	CourtID      int64
}

// UserRepository defines access to accounts.
type UserRepository interface {
	Create(ctx context.Context, record UserRecord) (UserRecord, error)
	GetByID(ctx context.Context, id int64) (UserRecord, error)
	GetByUsername(ctx context.Context, username string) (UserRecord, error)
	List(ctx context.Context) ([]UserRecord, error)
	ListByRole(ctx context.Context, role domain.Role) ([]UserRecord, error)
}

type userRepository struct {
	rows *table[UserRecord]
}

// NewUserRepository returns an empty repository.
func NewUserRepository() UserRepository {
	return &userRepository{rows: newTable[UserRecord]()}
}

func (r *userRepository) Create(_ context.Context, record UserRecord) (UserRecord, error) {
	if _, err := r.GetByUsername(context.Background(), record.User.Username); err == nil {
		return UserRecord{}, ErrDuplicate
	}
	return r.rows.insert(func(id int64) UserRecord {
		record.User.ID = id
		return record
	}), nil
}

func (r *userRepository) GetByID(_ context.Context, id int64) (UserRecord, error) {
	return r.rows.get(id)
}

func (r *userRepository) GetByUsername(_ context.Context, username string) (UserRecord, error) {
	matches := r.rows.filter(func(u UserRecord) bool {
		return strings.EqualFold(u.User.Username, username)
	})
	if len(matches) == 0 {
		return UserRecord{}, ErrNotFound
	}
	return matches[0], nil
}

func (r *userRepository) List(_ context.Context) ([]UserRecord, error) {
	return r.rows.filter(nil), nil
}

func (r *userRepository) ListByRole(_ context.Context, role domain.Role) ([]UserRecord, error) {
	return r.rows.filter(func(u UserRecord) bool { return u.User.Role == role }), nil
}
